package commands

import (
	"github.com/spf13/cobra"
	"github.com/target/dirsearch/internal/cli/output"
)

// profileFields are rendered by whoami as label and JMESPath expression.
var profileFields = [][2]string{
	{"Display name", "displayName"},
	{"Given name", "givenName"},
	{"Surname", "surname"},
	{"Job title", "jobTitle"},
	{"Mail", "mail"},
	{"Business phones", "join(', ', businessPhones)"},
	{"Office", "officeLocation"},
	{"UPN", "userPrincipalName"},
}

func newWhoamiCmd() *cobra.Command {
	var brief bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Sign in and show the signed-in operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd, appOptions{})
			if err != nil {
				return err
			}
			defer a.close(ctx)

			ctx, stop := a.watch(ctx)
			defer stop()
			res, err := a.services.Session.Connect(ctx)
			if err != nil {
				return err
			}
			if brief {
				return a.out.Print(output.IdentityView{
					Identity: res.Identity,
					State:    a.services.Session.State().String(),
				})
			}

			tok, err := a.services.Session.GetToken(ctx)
			if err != nil {
				return err
			}
			profile, err := a.services.Directory.GetCallerProfile(ctx, tok)
			if err != nil {
				return err
			}
			return a.out.PrintProfile(profile, profileFields)
		},
	}
	cmd.Flags().BoolVar(&brief, "brief", false, "Print only the identity and session state")
	return cmd
}
