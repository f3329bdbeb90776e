/*
Package dsl provides a fluent builder for menu machine configs.

It spares integrators from writing nested maps of handlers by hand and checks
the result with the same validation the runtime applies.

Example usage:

	cfg, err := dsl.New("IDLE").
		Mode("IDLE").
			Data(map[string]any{"count": 0}).
			Schema(schema.Schema{"count": schema.Int()}).
			Action("inc", inc).
			Go("open", "OPEN").
		Mode("OPEN").
			Go("close", "IDLE").
		Build()
*/
package dsl
