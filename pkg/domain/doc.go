/*
Package domain contains the core value types shared by the definition builder,
the composition engine and the host adapters.

It is kept free of I/O and of any dependency on the engine itself, so that
definitions, plugins and hosts can agree on the same vocabulary.

# Key Entities

  - Action: the value produced by an action creator and consumed by the transition function.
  - Context: the routing context recording which list item is selected at each nesting level.
  - Creator: a node of the action-creator tree, bound to a Context.
  - Hooks: optional callbacks observing dispatch outcomes and warnings.
*/
package domain
