// Package cli renders the three interactive views (list, detail/edit,
// create) of the userboard terminal client on top of the API client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/userboard/userboard/pkg/client"
)

type App struct {
	api *client.Client
	in  *bufio.Scanner
	out io.Writer
}

func New(api *client.Client, in io.Reader, out io.Writer) *App {
	return &App{api: api, in: bufio.NewScanner(in), out: out}
}

// Run enters the list view and blocks until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	return a.runList(ctx)
}

// readLine prompts and reads one line. ok is false when input is exhausted,
// which every view treats as "back"/"quit".
func (a *App) readLine(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) runList(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out, "Loading users...")
		users, err := a.api.List(ctx)
		if err != nil {
			fmt.Fprintln(a.out, "Failed to load user list.")
			cmd, ok := a.readLine("[r]etry, [q]uit: ")
			if !ok || cmd == "q" {
				return nil
			}
			continue
		}

		a.renderList(users)

		cmd, ok := a.readLine("Row number to open, d <row> to delete, [c]reate, [q]uit: ")
		if !ok {
			return nil
		}
		switch {
		case cmd == "q":
			return nil
		case cmd == "c":
			a.runCreate(ctx)
		case strings.HasPrefix(cmd, "d "):
			if u, found := pickRow(users, strings.TrimPrefix(cmd, "d ")); found {
				a.deleteUser(ctx, u)
			} else {
				fmt.Fprintln(a.out, "No such row.")
			}
		default:
			if u, found := pickRow(users, cmd); found {
				a.runDetail(ctx, u.ID)
			} else {
				fmt.Fprintln(a.out, "No such row.")
			}
		}
	}
}

func (a *App) renderList(users []client.User) {
	fmt.Fprintln(a.out, "== Users ==")
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found. Try creating one!")
		return
	}
	for i, u := range users {
		fmt.Fprintf(a.out, "%3d  %-20s %s\n", i+1, u.Username, u.Email)
	}
}

func pickRow(users []client.User, raw string) (client.User, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > len(users) {
		return client.User{}, false
	}
	return users[n-1], true
}

func (a *App) deleteUser(ctx context.Context, u client.User) {
	answer, ok := a.readLine(fmt.Sprintf("Delete %q? [y/N]: ", u.Username))
	if !ok || !strings.EqualFold(answer, "y") {
		return
	}
	if err := a.api.Delete(ctx, u.ID); err != nil {
		fmt.Fprintln(a.out, "Error deleting user.")
		return
	}
	fmt.Fprintln(a.out, "User deleted successfully!")
}
