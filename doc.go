/*
Package cardmenu is a small engine for menu-style applications built as
finite state machines.

An integrator declares a set of modes. Each mode owns some data, a table of
actions that replace that data and a table of transitions that may move the
machine to another mode. The engine is a pure reducer over that table: the
same state and action always produce the same result, and anything outside
the declared table is rejected with a typed error instead of being ignored.

# Layers

  - pkg/domain: states, actions, mode definitions and the error types.
  - pkg/runtime: the reducer and config validation.
  - pkg/binder: a stateful instance exposing one callable handler per
    declared name of the current mode.
  - pkg/kind, pkg/equal, pkg/check: the value classifier, structural
    equality and a tiny assertion harness built on them.
  - pkg/cx: class-name composition for HTML views.
  - internal/menu: the card-game menu shipped with the cardmenu command.

# Usage

	app, err := cardmenu.New()
	if err != nil {
		log.Fatal(err)
	}

	b := app.NewBinder()
	_, transitions := b.Handlers()
	if err := transitions["play"](); err != nil {
		log.Fatal(err)
	}
	fmt.Println(b.State().Mode) // PLAYING
*/
package cardmenu
