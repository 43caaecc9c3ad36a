package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/database/migration"
	dbpostgres "skill-passport/internal/database/postgres"
	"skill-passport/internal/domain/skill"
	"skill-passport/internal/domain/user"
	"skill-passport/internal/infrastructure/cache"
	"skill-passport/internal/infrastructure/events"
	"skill-passport/internal/infrastructure/persistence/memory"
	"skill-passport/internal/infrastructure/persistence/postgres"
	"skill-passport/internal/logging"
	"skill-passport/internal/pkg/jwt"
	"skill-passport/internal/usecase/access"
	ucauth "skill-passport/internal/usecase/auth"
	ucskill "skill-passport/internal/usecase/skill"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger logging.Logger

	DB     *dbpostgres.Pool
	Memory *memory.Store
	Users  user.Repository
	Skills skill.Repository

	Cache     *cache.Redis
	Publisher events.Publisher

	Tokens jwt.Service
	Gate   *access.Gate
	Auth   *ucauth.Service
	Skill  *ucskill.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)
	} else {
		c.Cache = cache.NewBypass()
	}

	c.Publisher = events.Noop{}
	if cfg.RabbitMQ.URL != "" {
		pub, err := events.NewRabbitMQ(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Warn(ctx, "rabbitmq unavailable, skill events disabled", "error", err)
		} else {
			c.Publisher = events.NewDispatcher(pub, cfg.RabbitMQ.PublishWorkers, cfg.RabbitMQ.PublishBuffer, logger)
		}
	}

	var revocations access.Revocations
	if c.Cache.Available() {
		revocations = c.Cache
	}

	c.Tokens = jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL, cfg.App.AppName)
	c.Gate = access.NewGate(c.Users, c.Tokens, revocations, logger)
	c.Auth = ucauth.NewService(c.Users, c.Gate, logger)
	c.Skill = ucskill.NewService(c.Skills, c.Cache, c.Publisher, logger)

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	if !c.Config.UsesPostgres() {
		c.Memory = memory.New()
		c.Users = c.Memory
		c.Skills = c.Memory
		c.Logger.Info(ctx, "using in-memory store")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if c.Config.Database.AutoMigrate {
		if err := migration.Up(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return err
		}
	}

	c.DB = db
	c.Users = postgres.NewUserRepository(db)
	c.Skills = postgres.NewSkillRepository(db)
	c.Logger.Info(ctx, "using postgres store", "host", c.Config.Database.DBHost, "db", c.Config.Database.DBName)
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Memory != nil {
		errs = append(errs, c.Memory.Close())
	}
	return errors.Join(errs...)
}
