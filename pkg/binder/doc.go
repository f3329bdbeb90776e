/*
Package binder adapts the pure runtime reducer to a long-lived state holder
for an imperative view layer.

A Binder owns exactly one MachineState. The view reads it through Snapshot,
which also carries the bound handler surface of the current mode: one
callable per declared action and transition name, each closed over Dispatch.
The surface is cached per mode and rebuilt only when the mode changes, so a
view re-rendering after an unrelated data change sees the same handler maps.

	b, err := binder.New(cfg, binder.WithLogger(logger))
	if err != nil {
		return err
	}
	view := b.Snapshot()
	if err := view.Actions["down"](); err != nil {
		return err // runtime errors propagate unchanged
	}

A Binder is not safe for concurrent use. Binders never share state; use one
per session and serialize access to it (see pkg/session).
*/
package binder
