/*
Package session hosts the state of many independent sessions over one reducer.

A Manager serializes the actions of each session, keeps the resulting state
in a ports.StateStore and tells subscribers which paths an action changed.
Sessions do not share state; actions for different sessions run in parallel.
*/
package session
