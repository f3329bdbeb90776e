package domain

// Mode names one screen class of the machine (e.g. ROOT_MENU, PLAYING).
type Mode string

// Data is the local data owned by the active mode.
// Its shape is defined solely by the owning ModeDefinition.
type Data = any

// MachineState is the snapshot of a running machine.
type MachineState struct {
	// Mode is always a key of Config.Modes.
	Mode Mode `json:"mode"`

	// Data has no meaning outside Mode.
	Data Data `json:"data"`
}

// NewState creates a state for the given mode and data.
func NewState(mode Mode, data Data) MachineState {
	return MachineState{Mode: mode, Data: data}
}

// WithData returns a copy of the state carrying new data in the same mode.
func (s MachineState) WithData(data Data) MachineState {
	return MachineState{Mode: s.Mode, Data: data}
}
