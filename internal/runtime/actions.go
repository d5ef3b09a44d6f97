package runtime

import (
	"fmt"

	"github.com/aretw0/compact/pkg/domain"
)

// Actions is a node of the action-creator tree bound to a routing context.
// It is a small value pointing at a shared compiled template, so navigating
// the tree only allocates the extended context.
type Actions struct {
	node *node
	ctx  domain.Context
	err  error
}

var _ domain.Creator = (*Actions)(nil)

// Do builds the action for the named reducer of this node.
func (a *Actions) Do(name string, args ...any) (domain.Action, error) {
	if a.err != nil {
		return domain.Action{}, a.err
	}
	typ, ok := a.node.types[name]
	if !ok {
		return domain.Action{}, fmt.Errorf("%w: %q at %s", domain.ErrUnknownReducer, name, a.node.where())
	}
	return domain.Action{
		Type:    typ,
		Args:    append([]any{}, args...),
		Context: a.ctx.Clone(),
	}, nil
}

// Call runs the named custom action creator with a as its receiver.
// Errors returned by the action creator are passed through unchanged.
func (a *Actions) Call(name string, args ...any) (domain.Action, error) {
	if a.err != nil {
		return domain.Action{}, a.err
	}
	fn, ok := a.node.def.LookupActionCreator(name)
	if !ok {
		return domain.Action{}, fmt.Errorf("%w: %q at %s", domain.ErrUnknownActionCreator, name, a.node.where())
	}
	return fn(a, args...)
}

// Slice returns the creator of the combined child called name.
func (a *Actions) Slice(name string) domain.Creator {
	if a.err != nil {
		return a
	}
	child, ok := a.node.children[name]
	if !ok {
		return a.fail(fmt.Errorf("%w: %q at %s", domain.ErrUnknownSlice, name, a.node.where()))
	}
	return &Actions{node: child, ctx: a.ctx}
}

// Item returns the creator of the list item selected by a key or an item value.
func (a *Actions) Item(selector any) domain.Creator {
	if a.err != nil {
		return a
	}
	if a.node.item == nil {
		return a.fail(fmt.Errorf("%w: %s", domain.ErrNotAList, a.node.where()))
	}
	key := a.node.spec.KeyOf(selector)
	if key == "" {
		return a.fail(fmt.Errorf("%w: %s[%v]", domain.ErrNoItemKey, a.node.where(), selector))
	}
	return &Actions{node: a.node.item, ctx: a.ctx.With(a.node.slot, key)}
}

// Context returns a copy of the routing context bound to a.
func (a *Actions) Context() domain.Context {
	return a.ctx.Clone()
}

// Type returns the dispatch key of the named reducer, or "" if there is none.
func (a *Actions) Type(name string) string {
	return a.node.types[name]
}

// Err reports the first navigation error.
func (a *Actions) Err() error {
	return a.err
}

func (a *Actions) fail(err error) *Actions {
	return &Actions{node: a.node, ctx: a.ctx, err: err}
}
