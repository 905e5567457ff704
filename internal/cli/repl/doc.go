// Package repl runs the numbered menu of the interactive session.
//
//   - repl.go: menu loop and dispatch
//   - completer.go: resolves a choice typed as a number or a label prefix
//
// A failing command returns to the menu. Escape at the menu is ignored;
// end of input or Ctrl-C leaves the loop.
package repl
