/*
Package manifest describes definitions and action scripts as YAML documents.

A manifest names a root node. Every node may carry a default, a list of
plugins to apply (resolved through a registry.Registry), reducers registered
in Go under another name, ordered fields (making it a composite) or a list
(making it a collection):

	name: todos
	root:
	  fields:
	    - name: filter
	      default: all
	      use: [replace]
	    - name: todos
	      use: [list]
	      list:
	        key: id
	        item:
	          use: [object]
	          reducers:
	            toggle: toggleCompleted

An action script is a sequence of steps. A step either spells out the action
(type, args, context) or reaches it through the action-creator tree:

	- path: [todos]
	  do: push
	  args: [{id: "1", text: write docs}]
	- path: [todos, {item: "1"}]
	  do: toggle
*/
package manifest
