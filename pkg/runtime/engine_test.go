package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterConfig is the two-mode machine used across these tests:
// A{count} --inc--> A{count+1}, A --toB--> B{}.
func counterConfig() domain.Config {
	return domain.Config{
		InitialMode: "A",
		Modes: map[domain.Mode]domain.ModeDefinition{
			"A": {
				InitialData: map[string]any{"count": 0},
				Actions: map[string]domain.ActionFunc{
					"inc": func(data domain.Data, _ any) (domain.Data, error) {
						d := data.(map[string]any)
						return map[string]any{"count": d["count"].(int) + 1}, nil
					},
				},
				Transitions: map[string]domain.TransitionFunc{
					"toB": func(_ domain.MachineState, _ any) (domain.MachineState, error) {
						return domain.NewState("B", map[string]any{}), nil
					},
				},
				Targets: map[string][]domain.Mode{"toB": {"B"}},
				Schema:  schema.Schema{"count": schema.Int()},
			},
			"B": {
				InitialData: map[string]any{},
			},
		},
	}
}

func TestMachine_CounterScenario(t *testing.T) {
	m, err := runtime.New(counterConfig())
	require.NoError(t, err)

	state := m.Initial()
	assert.Equal(t, domain.NewState("A", map[string]any{"count": 0}), state)

	state, err = m.Dispatch(state, domain.NewAction("inc", nil))
	require.NoError(t, err)
	state, err = m.Dispatch(state, domain.NewAction("inc", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.NewState("A", map[string]any{"count": 2}), state)

	state, err = m.Dispatch(state, domain.NewAction("toB", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.NewState("B", map[string]any{}), state)

	_, err = m.Dispatch(state, domain.NewAction("inc", nil))
	require.Error(t, err)
	var unhandled *domain.UnhandledActionError
	require.True(t, errors.As(err, &unhandled))
	assert.Equal(t, domain.Mode("B"), unhandled.Mode)
	assert.Equal(t, "inc", unhandled.ActionType)
	assert.ErrorIs(t, err, domain.ErrUnhandledAction)
}

func TestMachine_TotalOverDeclaredDomain(t *testing.T) {
	cfg := counterConfig()
	m, err := runtime.New(cfg)
	require.NoError(t, err)

	for _, mode := range m.Modes() {
		state := domain.NewState(mode, cfg.Modes[mode].InitialData)
		actions, transitions := m.Names(mode)

		for _, name := range append(actions, transitions...) {
			next, err := m.Dispatch(state, domain.NewAction(name, nil))
			require.NoError(t, err, "%s/%s", mode, name)
			_, declared := cfg.Modes[next.Mode]
			assert.True(t, declared, "%s/%s produced %q", mode, name, next.Mode)
		}

		_, err := m.Dispatch(state, domain.NewAction("undeclared", nil))
		assert.ErrorIs(t, err, domain.ErrUnhandledAction)
	}
}

func TestMachine_IsPure(t *testing.T) {
	m, err := runtime.New(counterConfig())
	require.NoError(t, err)

	start := m.Initial()
	first, err := m.Dispatch(start, domain.NewAction("inc", nil))
	require.NoError(t, err)
	second, err := m.Dispatch(start, domain.NewAction("inc", nil))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"count": 0}, start.Data, "previous snapshot must stay valid")
}

func TestMachine_Lookup(t *testing.T) {
	m, err := runtime.New(counterConfig())
	require.NoError(t, err)

	assert.Equal(t, domain.KindAction, m.Lookup("A", "inc"))
	assert.Equal(t, domain.KindTransition, m.Lookup("A", "toB"))
	assert.Equal(t, domain.KindNone, m.Lookup("B", "inc"))
	assert.Equal(t, domain.KindNone, m.Lookup("Z", "inc"))
}

func TestMachine_CopiesConfig(t *testing.T) {
	cfg := counterConfig()
	m, err := runtime.New(cfg)
	require.NoError(t, err)

	delete(cfg.Modes["A"].Actions, "inc")

	_, err = m.Dispatch(m.Initial(), domain.NewAction("inc", nil))
	assert.NoError(t, err)
}

func TestDispatch_UnknownMode(t *testing.T) {
	cfg := counterConfig()
	cfg.Modes["A"].Transitions["lost"] = func(s domain.MachineState, _ any) (domain.MachineState, error) {
		return domain.NewState("NOWHERE", nil), nil
	}

	_, err := runtime.Dispatch(cfg, cfg.Initial(), domain.NewAction("lost", nil))
	var unknown *domain.UnknownModeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, domain.Mode("NOWHERE"), unknown.Mode)
	assert.Equal(t, "lost", unknown.Transition)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestDispatch_UndeclaredCurrentMode(t *testing.T) {
	_, err := runtime.Dispatch(counterConfig(), domain.NewState("Z", nil), domain.NewAction("inc", nil))
	assert.ErrorIs(t, err, domain.ErrUnhandledAction)
}

func TestDispatch_HandlerErrorsPropagateUnchanged(t *testing.T) {
	boom := errors.New("boom")
	cfg := counterConfig()
	cfg.Modes["A"].Actions["fail"] = func(domain.Data, any) (domain.Data, error) {
		return nil, boom
	}

	_, err := runtime.Dispatch(cfg, cfg.Initial(), domain.NewAction("fail", nil))
	assert.Same(t, boom, err)
}

func TestDispatch_DataContract(t *testing.T) {
	cfg := counterConfig()
	cfg.Modes["A"].Actions["corrupt"] = func(domain.Data, any) (domain.Data, error) {
		return map[string]any{"count": "many"}, nil
	}

	_, err := runtime.Dispatch(cfg, cfg.Initial(), domain.NewAction("corrupt", nil))
	var contract *domain.DataContractError
	require.True(t, errors.As(err, &contract))
	assert.Equal(t, domain.Mode("A"), contract.Mode)
	require.Len(t, schema.ValidationErrors(err), 1)
	assert.Equal(t, "count", schema.ValidationErrors(err)[0].Key)
}

func TestMachine_StrictDataDetectsMutation(t *testing.T) {
	cfg := counterConfig()
	cfg.Modes["A"].Actions["sneaky"] = func(data domain.Data, _ any) (domain.Data, error) {
		d := data.(map[string]any)
		d["count"] = 99
		return d, nil
	}

	m, err := runtime.New(cfg, runtime.WithStrictData())
	require.NoError(t, err)

	state := domain.NewState("A", map[string]any{"count": 0})
	_, err = m.Dispatch(state, domain.NewAction("sneaky", nil))
	var mutation *domain.MutationError
	require.True(t, errors.As(err, &mutation))
	assert.Equal(t, "sneaky", mutation.ActionType)

	_, err = m.Dispatch(domain.NewState("A", map[string]any{"count": 0}), domain.NewAction("inc", nil))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	noop := func(d domain.Data, _ any) (domain.Data, error) { return d, nil }
	stay := func(s domain.MachineState, _ any) (domain.MachineState, error) { return s, nil }

	tests := []struct {
		name    string
		cfg     domain.Config
		wantErr string
	}{
		{
			name:    "no modes",
			cfg:     domain.Config{InitialMode: "A"},
			wantErr: "no modes declared",
		},
		{
			name: "initial mode missing",
			cfg: domain.Config{
				InitialMode: "X",
				Modes:       map[domain.Mode]domain.ModeDefinition{"A": {}},
			},
			wantErr: "initial mode is not declared",
		},
		{
			name: "nil action",
			cfg: domain.Config{
				InitialMode: "A",
				Modes: map[domain.Mode]domain.ModeDefinition{
					"A": {Actions: map[string]domain.ActionFunc{"inc": nil}},
				},
			},
			wantErr: "action handler is nil",
		},
		{
			name: "ambiguous name",
			cfg: domain.Config{
				InitialMode: "A",
				Modes: map[domain.Mode]domain.ModeDefinition{
					"A": {
						Actions:     map[string]domain.ActionFunc{"go": noop},
						Transitions: map[string]domain.TransitionFunc{"go": stay},
					},
				},
			},
			wantErr: "declared as both action and transition",
		},
		{
			name: "undeclared target",
			cfg: domain.Config{
				InitialMode: "A",
				Modes: map[domain.Mode]domain.ModeDefinition{
					"A": {
						Transitions: map[string]domain.TransitionFunc{"go": stay},
						Targets:     map[string][]domain.Mode{"go": {"B"}},
					},
				},
			},
			wantErr: `target mode "B" is not declared`,
		},
		{
			name: "initial data breaks contract",
			cfg: domain.Config{
				InitialMode: "A",
				Modes: map[domain.Mode]domain.ModeDefinition{
					"A": {
						InitialData: map[string]any{},
						Schema:      schema.Schema{"count": schema.Int()},
					},
				},
			},
			wantErr: `field "count": required`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runtime.Validate(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)

			_, err = runtime.New(tt.cfg)
			assert.Error(t, err)
		})
	}

	assert.NoError(t, runtime.Validate(counterConfig()))
}
