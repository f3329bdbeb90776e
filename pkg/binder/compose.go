package binder

import (
	"github.com/aretw0/cardmenu/pkg/domain"
)

// Connect injects the binder's snapshot into render, returning a render
// function that takes no arguments.
func Connect[T any](b *Binder, render func(View) T) func() T {
	return func() T {
		return render(b.Snapshot())
	}
}

// Compose creates a Binder for cfg and connects render to it.
// The Binder is returned as well so the caller can subscribe to re-renders.
func Compose[T any](cfg domain.Config, render func(View) T, opts ...Option) (func() T, *Binder, error) {
	b, err := New(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return Connect(b, render), b, nil
}
