// Package tui provides the optional full-screen selection prompt.
//
// It hosts a single text input inside a Bubble Tea program and satisfies
// the same Prompter contract as the plain line prompter, so the triage
// session does not know which one it is talking to:
//
//	p := tui.NewPrompter(os.Stdin, os.Stdout)
//	answer, err := p.Prompt(ctx, "Pick P1,P2 (e.g., 1,2): ")
//
// Enter submits the typed answer, Esc submits an empty answer (the session
// reads that as the defaults) and Ctrl+C returns ErrCancelled.
package tui
