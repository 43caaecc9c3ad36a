package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skill-passport/internal/logging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	got    []SkillEvent
	closed bool
	block  chan struct{}
	err    error
}

func (r *recorder) PublishSkillEvent(_ context.Context, evt SkillEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, evt)
	return r.err
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, 4, 64, logging.Discard())

	for i := 0; i < 50; i++ {
		require.NoError(t, d.PublishSkillEvent(context.Background(), SkillEvent{
			Type:    TypeSkillRequested,
			SkillID: uuid.New(),
		}))
	}

	require.NoError(t, d.Close())
	assert.Equal(t, 50, rec.count())
	assert.True(t, rec.closed)

	err := d.PublishSkillEvent(context.Background(), SkillEvent{Type: TypeSkillApproved})
	assert.ErrorIs(t, err, ErrDispatcherClosed)
	assert.NoError(t, d.Close())
}

func TestDispatcher_QueueFull(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	d := NewDispatcher(rec, 1, 1, logging.Discard())

	// One event is held by the blocked worker, one fills the buffer.
	require.NoError(t, d.PublishSkillEvent(context.Background(), SkillEvent{}))
	require.Eventually(t, func() bool { return len(d.tasks) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, d.PublishSkillEvent(context.Background(), SkillEvent{}))

	err := d.PublishSkillEvent(context.Background(), SkillEvent{})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(rec.block)
	require.NoError(t, d.Close())
	assert.Equal(t, 2, rec.count())
}

func TestDispatcher_SurvivesCanceledContextAndErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}
	d := NewDispatcher(rec, 1, 4, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.PublishSkillEvent(ctx, SkillEvent{Type: TypeSkillRejected}))
	cancel()

	require.NoError(t, d.Close())
	assert.Equal(t, 1, rec.count())
}
