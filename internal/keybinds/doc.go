/*
Package keybinds maps key presses to dashboard actions.

Bindings live in a Registry keyed by Context. Match checks the active
context first and falls back to ContextGlobal. Two-key sequences such as
"gg" are resolved by MatchMultiKey, which reports a partial match after the
first key.

Defaults come from NewDefaultRegistry. Users override them with a
keybinds.json file in the config directory:

	{
	  "version": "1",
	  "dashboard": {
	    "generate": "enter,x",
	    "check_status": "R"
	  }
	}

Keys listed for an action replace that action's defaults in the same
context. ctrl+c is reserved for force quit.
*/
package keybinds
