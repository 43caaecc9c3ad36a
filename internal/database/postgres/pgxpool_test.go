package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"skill-passport/internal/config"
	"skill-passport/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "s3cret",
		DBName:     "passport",
		DBSSLMode:  "disable",
	})
	assert.Equal(t, "host=db port=5433 user=app password=s3cret dbname=passport sslmode=disable", dsn)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("boom")))
}

func TestNilPool(t *testing.T) {
	var p *Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), database.ErrNilDB)
	assert.NoError(t, p.Close())
	_, err := p.Exec(ctx, "select 1")
	assert.ErrorIs(t, err, database.ErrNilDB)
	assert.ErrorIs(t, p.QueryRow(ctx, "select 1").Scan(), database.ErrNilDB)
	assert.Nil(t, p.SQLDB())
}

func TestConnectDSN_BadDSN(t *testing.T) {
	_, err := ConnectDSN(context.Background(), "postgres://%zz", config.DatabaseConfig{})
	assert.Error(t, err)
}
