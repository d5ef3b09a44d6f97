/*
Package ports defines the interfaces between the reducer core and its hosts.

# Key Interfaces

  - Reducer: a compiled definition, i.e. the transition function plus its action creators.
  - Dispatcher: a host that owns state and applies actions to it.
  - StateStore: where a host keeps the current state of each session.
*/
package ports
