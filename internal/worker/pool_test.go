package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishEvents_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(job))
	require.NoError(t, pool.Enqueue(job))

	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()
	pool.Stop()

	var executed int32
	err := pool.Enqueue(&testJob{executed: &executed})
	assert.ErrorIs(t, err, ErrPoolStopped)
	pool.Stop()
}

func TestPool_SurvivesFailingAndPanickingJobs(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()

	var executed int32
	require.NoError(t, pool.Enqueue(JobFunc(func(context.Context) error { return errors.New("boom") })))
	require.NoError(t, pool.Enqueue(JobFunc(func(context.Context) error { panic("spawn failed") })))
	require.NoError(t, pool.Enqueue(&testJob{executed: &executed}))
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestGroup_WaitJoinsTrackedWork(t *testing.T) {
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	var executed int32
	g := pool.NewGroup()
	for i := 0; i < 5; i++ {
		g.Go(JobFunc(func(context.Context) error {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&executed, 1)
			return nil
		}))
	}

	require.NoError(t, g.Wait(context.Background()))
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
}

func TestGroup_WaitHonoursContext(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	defer pool.Stop()

	release := make(chan struct{})
	g := pool.NewGroup()
	g.Go(JobFunc(func(context.Context) error {
		<-release
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, g.Wait(ctx), context.DeadlineExceeded)
	close(release)
	require.NoError(t, g.Wait(context.Background()))
}

func TestGroup_RunsInlineOnStoppedPool(t *testing.T) {
	pool := NewPool(1, TestQueueSize)
	pool.Start()
	pool.Stop()

	var executed int32
	g := pool.NewGroup()
	g.Go(&testJob{executed: &executed})
	require.NoError(t, g.Wait(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(TestWorkerCount, TestQueueSize)
		pool.Start()
		var executed int32
		require.NoError(t, pool.Enqueue(&testJob{executed: &executed}))
		pool.Stop()
	})
}
