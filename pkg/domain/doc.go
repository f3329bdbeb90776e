/*
Package domain contains the core data model of the cardmenu engine.

It defines the fundamental entities of the finite state machine: the Mode that
selects which screen is active, the Data owned by that mode, the Action that
requests a change, and the Config that declares which actions and transitions
every mode accepts. The package is kept pure and free of I/O; the reducer lives
in pkg/runtime and the long-lived state holder in pkg/binder.

# Key Entities

  - Mode: a symbolic name for one screen class (ROOT_MENU, PLAYING, ...).
  - ModeDefinition: initial data plus the action and transition tables of a mode.
  - MachineState: the {Mode, Data} snapshot of a running machine.
  - Action: a tagged request ({Type, Payload}) routed to the current mode.
  - Config: the initial mode and every ModeDefinition, fixed at construction.

Actions replace Data and keep Mode. Transitions may replace the whole
MachineState. Handlers must return new values instead of mutating the data
they receive, so older snapshots stay valid for comparison.
*/
package domain
