package cli

import (
	"context"
	"fmt"
)

// runCreate holds a fresh draft and submits it; back discards the draft.
// Only username and email are checked locally, the server enforces the rest.
func (a *App) runCreate(ctx context.Context) {
	draft := NewDraft()
	for {
		fmt.Fprintln(a.out, "== Create User ==")
		a.fillDraft(draft)

		cmd, ok := a.readLine("[s]ubmit, [b]ack: ")
		if !ok || cmd == "b" {
			return
		}
		if cmd != "s" {
			continue
		}
		if !draft.HasRequired() {
			fmt.Fprintln(a.out, "Username and email are required.")
			continue
		}
		if _, err := a.api.Create(ctx, draft.User()); err != nil {
			fmt.Fprintln(a.out, "Error creating user. Please try again.")
			continue
		}
		fmt.Fprintln(a.out, "User created successfully!")
		return
	}
}
