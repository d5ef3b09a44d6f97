package domain

import "errors"

// ErrUnknownSlice is returned when navigating to a combined slice that the definition does not declare.
var ErrUnknownSlice = errors.New("unknown slice")

// ErrNotAList is returned when selecting an item on a definition that is not a list.
var ErrNotAList = errors.New("definition is not a list")

// ErrNoItemKey is returned when an item selector yields no key.
var ErrNoItemKey = errors.New("item selector has no key")

// ErrUnknownReducer is returned when building an action for a reducer that is not registered.
var ErrUnknownReducer = errors.New("unknown reducer")

// ErrUnknownActionCreator is returned when calling a custom action creator that is not registered.
var ErrUnknownActionCreator = errors.New("unknown action creator")

// ErrSessionNotFound is returned by a state store that holds no state for a session.
var ErrSessionNotFound = errors.New("session not found")
