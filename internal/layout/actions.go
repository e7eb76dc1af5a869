package layout

import (
	"context"
	"fmt"
)

// ActionKind names the three click affordances that change a panel.
type ActionKind string

const (
	// ActionToggle flips the panel.
	ActionToggle ActionKind = "toggle"
	// ActionOpen opens the panel whatever its state, so a second click
	// never closes it again.
	ActionOpen ActionKind = "open"
	// ActionClose closes the panel whatever its state.
	ActionClose ActionKind = "close"
)

// ParseActionKind parses "toggle", "open" or "close".
func ParseActionKind(s string) (ActionKind, error) {
	switch kind := ActionKind(s); kind {
	case ActionToggle, ActionOpen, ActionClose:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown panel action %q", s)
	}
}

// Action is a stateless control bound to one panel id.
type Action interface {
	Kind() ActionKind
	PanelID() string
	IsOpen() bool
	// Activate applies the action and returns the panel's resulting state.
	Activate(ctx context.Context) bool
}

type action struct {
	kind     ActionKind
	id       string
	provider *Provider
}

func newAction(ctx context.Context, kind ActionKind, id, caller string) action {
	return action{kind: kind, id: id, provider: MustFromContext(ctx, caller)}
}

func (a action) Kind() ActionKind { return a.kind }
func (a action) PanelID() string  { return a.id }

// IsOpen returns the stored state of the bound panel, which triggers use for
// aria-expanded and data-state.
func (a action) IsOpen() bool { return a.provider.IsOpen(a.id) }

// Trigger toggles a panel.
type Trigger struct{ action }

// NewTrigger binds a toggle to id. It panics without a Provider in ctx.
func NewTrigger(ctx context.Context, id string) *Trigger {
	return &Trigger{newAction(ctx, ActionToggle, id, "Trigger")}
}

// Activate toggles the panel.
func (t *Trigger) Activate(ctx context.Context) bool {
	return t.provider.Toggle(ctx, t.id)
}

// OpenAction force-opens a panel.
type OpenAction struct{ action }

// NewOpenAction binds a force-open to id. It panics without a Provider in
// ctx.
func NewOpenAction(ctx context.Context, id string) *OpenAction {
	return &OpenAction{newAction(ctx, ActionOpen, id, "OpenAction")}
}

// Activate opens the panel.
func (a *OpenAction) Activate(ctx context.Context) bool {
	a.provider.Open(ctx, a.id)
	return true
}

// CloseAction force-closes a panel.
type CloseAction struct{ action }

// NewCloseAction binds a force-close to id. It panics without a Provider in
// ctx.
func NewCloseAction(ctx context.Context, id string) *CloseAction {
	return &CloseAction{newAction(ctx, ActionClose, id, "CloseAction")}
}

// Activate closes the panel.
func (a *CloseAction) Activate(ctx context.Context) bool {
	a.provider.Close(ctx, a.id)
	return false
}

// NewAction returns the action of the given kind bound to id.
func NewAction(ctx context.Context, kind ActionKind, id string) (Action, error) {
	switch kind {
	case ActionToggle:
		return NewTrigger(ctx, id), nil
	case ActionOpen:
		return NewOpenAction(ctx, id), nil
	case ActionClose:
		return NewCloseAction(ctx, id), nil
	default:
		return nil, fmt.Errorf("unknown panel action %q", kind)
	}
}
