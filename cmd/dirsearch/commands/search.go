package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	apperrors "github.com/target/dirsearch/internal/errors"
)

func newSearchCmd() *cobra.Command {
	var (
		page   int
		detail int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search users and devices",
		Long: `Search signs in, then looks the query up as a user prefix (display name,
given name, surname, UPN or mail) and as an exact device serial number or
device name.

Examples:
  dirsearch search grace
  dirsearch search ABC123 --detail 1
  dirsearch search "Grace Hopper" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			ctx, stop := a.watch(ctx)
			defer stop()
			if _, err = a.services.Session.Connect(ctx); err != nil {
				return err
			}

			rs, searchErr := a.services.Search.Search(ctx, strings.Join(args, " "))
			if rs.Len() == 0 {
				if searchErr != nil {
					return searchErr
				}
				return a.out.PrintPage(a.services.Search.CurrentPage())
			}

			if detail > 0 {
				rec, ok := rs.At(detail - 1)
				if !ok {
					return apperrors.InvalidInput(fmt.Sprintf("no result %d; the search returned %d", detail, rs.Len()))
				}
				text, err := a.services.Search.SelectDetail(ctx, rec)
				if err != nil {
					return err
				}
				if err = a.out.PrintDetail(detail, rec, text); err != nil {
					return err
				}
				return searchErr
			}

			if err = a.out.PrintPage(a.services.Search.GoToPage(page)); err != nil {
				return err
			}
			return searchErr
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page of results to print")
	cmd.Flags().IntVar(&detail, "detail", 0, "Print details for result number N instead of a page")
	return cmd
}
