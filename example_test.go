package cardmenu_test

import (
	"fmt"

	"github.com/aretw0/cardmenu"
	"github.com/aretw0/cardmenu/pkg/domain"
)

func Example() {
	app, err := cardmenu.New()
	if err != nil {
		panic(err)
	}

	b := app.NewBinder()
	_, transitions := b.Handlers()
	if err := transitions["play"](); err != nil {
		panic(err)
	}

	actions, _ := b.Handlers()
	_ = actions["draw"]()
	_ = actions["draw"]()
	fmt.Println(b.State().Mode)
	fmt.Println(actions.Names())
	// Output:
	// PLAYING
	// [discard draw]
}

func ExampleApp_Dispatch() {
	app, err := cardmenu.New()
	if err != nil {
		panic(err)
	}

	state := app.Machine().Initial()
	state, _ = app.Dispatch(state, domain.NewAction("down", nil))
	fmt.Println(state.Data)

	_, err = app.Dispatch(state, domain.NewAction("draw", nil))
	fmt.Println(err)
	// Output:
	// {1}
	// mode "ROOT_MENU" does not handle "draw"
}
