package runtime

import (
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/schema"
)

// checkContract validates the data of state against the Schema of its mode.
func checkContract(def domain.ModeDefinition, state domain.MachineState) error {
	if len(def.Schema) == 0 {
		return nil
	}

	fields, err := domain.Fields(state.Data)
	if err != nil {
		return &domain.DataContractError{Mode: state.Mode, Err: err}
	}

	if err := schema.Validate(def.Schema, fields); err != nil {
		return &domain.DataContractError{Mode: state.Mode, Err: err}
	}
	return nil
}
