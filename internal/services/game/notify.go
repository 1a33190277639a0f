package game

import (
	"context"

	"github.com/mcoot/battleship-go2/internal/model"
)

// Notifiers fans an event out to several notifiers in order
type Notifiers []Notifier

// Notify implements Notifier
func (ns Notifiers) Notify(ctx context.Context, event model.Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(ctx context.Context, event model.Event)

// Notify implements Notifier
func (f NotifierFunc) Notify(ctx context.Context, event model.Event) {
	f(ctx, event)
}
