package dsl

import (
	"testing"

	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inc(data domain.Data, _ any) (domain.Data, error) {
	d := data.(map[string]any)
	return map[string]any{"count": d["count"].(int) + 1}, nil
}

func TestBuilder_SimpleFlow(t *testing.T) {
	cfg, err := New("IDLE").
		Mode("IDLE").
		Data(map[string]any{"count": 0}).
		Schema(schema.Schema{"count": schema.Int()}).
		Action("inc", inc).
		Go("open", "OPEN").
		Mode("OPEN").
		Data(map[string]any{"page": 1}).
		Go("close", "IDLE").
		Build()
	require.NoError(t, err)

	assert.Equal(t, domain.Mode("IDLE"), cfg.InitialMode)
	assert.Equal(t, []domain.Mode{"IDLE", "OPEN"}, cfg.ModeNames())
	assert.Equal(t, []domain.Mode{"OPEN"}, cfg.Modes["IDLE"].Targets["open"])

	state := cfg.Initial()
	state, err = runtime.Dispatch(cfg, state, domain.NewAction("inc", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": 1}, state.Data)

	state, err = runtime.Dispatch(cfg, state, domain.NewAction("open", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.NewState("OPEN", map[string]any{"page": 1}), state)

	state, err = runtime.Dispatch(cfg, state, domain.NewAction("close", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.NewState("IDLE", map[string]any{"count": 0}), state)
}

func TestModeBuilder_MustBuild(t *testing.T) {
	cfg := New("A").Mode("A").Go("next", "B").Mode("B").MustBuild()
	assert.Equal(t, []domain.Mode{"A", "B"}, cfg.ModeNames())

	assert.Panics(t, func() { New("A").Mode("A").Go("next", "B").MustBuild() })
}

func TestBuilder_ModeIsReused(t *testing.T) {
	b := New("A")
	first := b.Mode("A")
	assert.Same(t, first, b.Mode("A"))
}

func TestBuilder_Transition(t *testing.T) {
	toB := func(s domain.MachineState, _ any) (domain.MachineState, error) {
		return domain.NewState("B", s.Data), nil
	}
	cfg, err := New("A").
		Mode("A").Transition("toB", toB, "B").
		Mode("B").
		Build()
	require.NoError(t, err)
	assert.Equal(t, []domain.Mode{"B"}, cfg.Modes["A"].Targets["toB"])
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("unknown go target", func(t *testing.T) {
		_, err := New("A").Mode("A").Go("next", "MISSING").Build()
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("initial mode not declared", func(t *testing.T) {
		_, err := New("X").Mode("A").Build()
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("initial data violates schema", func(t *testing.T) {
		_, err := New("A").
			Mode("A").
			Data(map[string]any{"count": "zero"}).
			Schema(schema.Schema{"count": schema.Int()}).
			Build()
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("must build panics", func(t *testing.T) {
		assert.Panics(t, func() { New("X").MustBuild() })
	})
}
