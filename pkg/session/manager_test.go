package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterMachine(t *testing.T) *runtime.Machine {
	t.Helper()
	cfg := domain.Config{
		InitialMode: "A",
		Modes: map[domain.Mode]domain.ModeDefinition{
			"A": {
				InitialData: 0,
				Actions: map[string]domain.ActionFunc{
					"inc": func(d domain.Data, _ any) (domain.Data, error) { return d.(int) + 1, nil },
				},
			},
		},
	}
	m, err := runtime.New(cfg)
	require.NoError(t, err)
	return m
}

func TestManager_Lifecycle(t *testing.T) {
	mgr := session.NewManager(counterMachine(t))
	ctx := context.Background()

	id, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, mgr.Len())

	err = mgr.Do(ctx, id, func(b *binder.Binder) error {
		return b.Dispatch(domain.NewAction("inc", nil))
	})
	require.NoError(t, err)

	var data domain.Data
	require.NoError(t, mgr.Do(ctx, id, func(b *binder.Binder) error {
		data = b.State().Data
		return nil
	}))
	assert.Equal(t, 1, data)

	require.NoError(t, mgr.Delete(ctx, id))
	assert.Equal(t, 0, mgr.Len())

	err = mgr.Do(ctx, id, func(*binder.Binder) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Delete(ctx, id), domain.ErrSessionNotFound)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	mgr := session.NewManager(counterMachine(t))
	ctx := context.Background()

	a, err := mgr.Create(ctx)
	require.NoError(t, err)
	b, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	inc := func(b *binder.Binder) error { return b.Dispatch(domain.NewAction("inc", nil)) }
	require.NoError(t, mgr.Do(ctx, a, inc))
	require.NoError(t, mgr.Do(ctx, a, inc))
	require.NoError(t, mgr.Do(ctx, b, inc))

	read := func(id string) domain.Data {
		var d domain.Data
		require.NoError(t, mgr.Do(ctx, id, func(b *binder.Binder) error {
			d = b.State().Data
			return nil
		}))
		return d
	}
	assert.Equal(t, 2, read(a))
	assert.Equal(t, 1, read(b))

	ids := []string{}
	for _, info := range mgr.List() {
		ids = append(ids, info.ID)
	}
	assert.ElementsMatch(t, []string{a, b}, ids)
}

func TestManager_ConcurrentDispatchIsSerialized(t *testing.T) {
	mgr := session.NewManager(counterMachine(t))
	ctx := context.Background()
	id, err := mgr.Create(ctx)
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.Do(ctx, id, func(b *binder.Binder) error {
				return b.Dispatch(domain.NewAction("inc", nil))
			})
		}()
	}
	wg.Wait()

	require.NoError(t, mgr.Do(ctx, id, func(b *binder.Binder) error {
		assert.Equal(t, workers, b.State().Data)
		return nil
	}))
}

func TestManager_IDGenerator(t *testing.T) {
	n := 0
	mgr := session.NewManager(counterMachine(t), session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s%d", n%2)
	}))
	ctx := context.Background()

	id, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s1", id)

	_, err = mgr.Create(ctx)
	require.NoError(t, err)

	_, err = mgr.Create(ctx) // "s1" again
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManager_CanceledContext(t *testing.T) {
	mgr := session.NewManager(counterMachine(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mgr.Create(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, mgr.Do(ctx, "x", func(*binder.Binder) error { return nil }), context.Canceled)
}

type countingObserver struct{ open, closed int }

func (o *countingObserver) SessionOpened() { o.open++ }
func (o *countingObserver) SessionClosed() { o.closed++ }

func TestManager_Observer(t *testing.T) {
	obs := &countingObserver{}
	mgr := session.NewManager(counterMachine(t), session.WithObserver(obs))
	ctx := context.Background()

	id, err := mgr.Create(ctx)
	require.NoError(t, err)
	_, err = mgr.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, mgr.Delete(ctx, id))
	assert.ErrorIs(t, mgr.Delete(ctx, id), domain.ErrSessionNotFound)

	assert.Equal(t, 2, obs.open)
	assert.Equal(t, 1, obs.closed)
}
