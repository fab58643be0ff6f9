// Package interact resolves which registered interactable the player is focusing,
// given a per-tick picking signal, and dispatches the explicit interact action
package interact

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Interactable is a target the player can focus and activate
type Interactable struct {
	ID         string
	Label      string
	OnActivate func()
}

// Resolver holds the registered interactables and the single current focus
// Enter/leave hooks fire once per focus transition, never once per tick
type Resolver struct {
	targets map[string]*Interactable
	current *Interactable

	onEnter []func(Interactable)
	onLeave []func(Interactable)

	log zerolog.Logger
}

// NewResolver creates an empty resolver
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{
		targets: make(map[string]*Interactable),
		log:     log.With().Str("component", "interact").Logger(),
	}
}

// Register adds an interactable, ids must be unique for the session
func (r *Resolver) Register(id, label string, onActivate func()) error {
	if id == "" {
		return fmt.Errorf("interactable id must not be empty")
	}
	if _, exists := r.targets[id]; exists {
		return fmt.Errorf("interactable %q already registered", id)
	}
	r.targets[id] = &Interactable{ID: id, Label: label, OnActivate: onActivate}
	return nil
}

// OnEnter adds a hook invoked when an interactable gains focus
func (r *Resolver) OnEnter(fn func(Interactable)) {
	r.onEnter = append(r.onEnter, fn)
}

// OnLeave adds a hook invoked when an interactable loses focus
func (r *Resolver) OnLeave(fn func(Interactable)) {
	r.onLeave = append(r.onLeave, fn)
}

// Update takes the currently pointed-at id from the picking collaborator
// An empty or unregistered id means nothing interactable is pointed at
func (r *Resolver) Update(pickedID string) {
	target := r.targets[pickedID]

	if target == nil {
		if r.current != nil {
			r.leave()
		}
		return
	}

	if r.current == target {
		return
	}
	if r.current != nil {
		r.leave()
	}
	r.current = target
	r.log.Debug().Str("target", target.ID).Msg("focus enter")
	for _, fn := range r.onEnter {
		fn(*target)
	}
}

func (r *Resolver) leave() {
	prev := r.current
	r.current = nil
	r.log.Debug().Str("target", prev.ID).Msg("focus leave")
	for _, fn := range r.onLeave {
		fn(*prev)
	}
}

// TryInteract activates the current focus
// Returns false when nothing is focused, which is silently ignored
func (r *Resolver) TryInteract() bool {
	if r.current == nil {
		return false
	}
	if r.current.OnActivate != nil {
		r.current.OnActivate()
	}
	return true
}

// Current returns the focused interactable, if any
func (r *Resolver) Current() (Interactable, bool) {
	if r.current == nil {
		return Interactable{}, false
	}
	return *r.current, true
}

// Lookup returns a registered interactable by id
func (r *Resolver) Lookup(id string) (Interactable, bool) {
	t, ok := r.targets[id]
	if !ok {
		return Interactable{}, false
	}
	return *t, true
}

// Len returns the number of registered interactables
func (r *Resolver) Len() int {
	return len(r.targets)
}
