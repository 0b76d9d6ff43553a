package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/target/dirsearch/internal/cli/prompt"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/service"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive search session",
		Long: `Shell signs in and then loops: enter a query, browse the results five at a
time, and pick an entry to see its details and related records.

Ctrl+C during sign-in cancels the sign-in only. Ctrl+C at a prompt leaves the shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd, appOptions{Interactive: true})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			ctx, stop := a.watch(ctx)
			defer stop()
			return a.shell(ctx)
		},
	}
}

// shell runs the interactive loop until the operator quits or ctx ends.
func (a *app) shell(ctx context.Context) error {
	for ctx.Err() == nil {
		if a.services.Session.State() != domainauth.StateConnected {
			if !a.signIn(ctx) {
				return nil
			}
			continue
		}

		query, err := prompt.Query(service.SearchPlaceholder)
		if err != nil {
			return ignoreAborted(err)
		}
		rs, err := a.services.Search.Search(ctx, query)
		if err != nil {
			a.logger.DebugContext(ctx, "search finished with errors", "error", err)
		}
		if rs.Len() == 0 {
			continue
		}
		quit, err := a.browse(ctx)
		if err != nil || quit {
			return err
		}
	}
	return nil
}

// signIn connects, offering a retry after a failed attempt. It returns false
// when the operator gives up.
func (a *app) signIn(ctx context.Context) bool {
	for ctx.Err() == nil {
		if _, err := a.services.Session.Connect(ctx); err == nil {
			return true
		}
		again, err := prompt.Confirm("Try signing in again?", true)
		if err != nil || !again {
			return false
		}
	}
	return false
}

// browse shows the results menu until the operator starts a new search or
// logs out. It reports quit when the shell should exit.
func (a *app) browse(ctx context.Context) (bool, error) {
	search := a.services.Search
	page := search.CurrentPage()
	for ctx.Err() == nil {
		choice, err := prompt.SelectResult(page)
		if err != nil {
			return true, ignoreAborted(err)
		}
		switch choice.Action {
		case prompt.ActionSelect:
			rec := page.Records[choice.Index]
			text, err := search.SelectIndex(ctx, choice.Index)
			if err != nil {
				a.status.Error(err.Error())
				continue
			}
			if err = a.out.PrintDetail(page.Offset()+choice.Index+1, rec, text); err != nil {
				return true, err
			}
		case prompt.ActionNextPage:
			page = search.NextPage()
		case prompt.ActionPrevPage:
			page = search.PrevPage()
		case prompt.ActionNewSearch:
			return false, nil
		case prompt.ActionLogout:
			if err = a.services.Session.Logout(ctx); err != nil {
				a.status.Error(err.Error())
			}
			return false, nil
		case prompt.ActionQuit:
			return true, nil
		}
	}
	return true, nil
}

func ignoreAborted(err error) error {
	if prompt.IsAborted(err) {
		return nil
	}
	return err
}
