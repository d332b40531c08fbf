package hotkey

import (
	"fmt"
	"sync"
)

// Action is what a hotkey does.
type Action int

// Actions.
const (
	ActionNone Action = iota
	ActionCopy
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionClear:
		return "clear"
	default:
		return "none"
	}
}

// Dispatcher maps key events to actions and runs the action's handler.
// Handlers run on the caller's goroutine and should return quickly; a slow
// action like copy should start its own goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	bindings map[Binding]Action
	handlers map[Action]func()
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		bindings: make(map[Binding]Action),
		handlers: make(map[Action]func()),
	}
}

// Bind assigns b to action and sets its handler. Rebinding an action
// replaces its previous binding.
func (d *Dispatcher) Bind(b Binding, action Action, handler func()) error {
	if b.IsZero() || action == ActionNone {
		return fmt.Errorf("%w: empty binding or action", ErrInvalidBinding)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.bindings[b]; ok && existing != action {
		return fmt.Errorf("%w: %s is used by %s", ErrConflict, b, existing)
	}
	for other, a := range d.bindings {
		if a == action {
			delete(d.bindings, other)
		}
	}
	d.bindings[b] = action
	d.handlers[action] = handler
	return nil
}

// Lookup returns the action bound to ev.
func (d *Dispatcher) Lookup(ev KeyEvent) Action {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.bindings[ev]
}

// Binding returns the binding of action, if any.
func (d *Dispatcher) Binding(action Action) (Binding, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for b, a := range d.bindings {
		if a == action {
			return b, true
		}
	}
	return Binding{}, false
}

// Handle runs the handler bound to ev. It returns false when ev is not
// bound so the host can pass the key through.
func (d *Dispatcher) Handle(ev KeyEvent) bool {
	d.mu.RLock()
	action, ok := d.bindings[ev]
	handler := d.handlers[action]
	d.mu.RUnlock()

	if !ok {
		return false
	}
	if handler != nil {
		handler()
	}
	return true
}
