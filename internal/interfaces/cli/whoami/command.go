package whoami

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thinkartha/smileybox/internal/interfaces/cli/bootstrap"
)

var (
	configPath string
	asEmail    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show a user and what their role may do",
		Long:  `Sign in as the given user and print their profile and the permissions their role holds, inherited ones included.`,
		RunE:  runWhoami,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&asEmail, "as", "", "Email of the user to sign in as (required)")
	cmd.MarkFlagRequired("as")

	return cmd
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := bootstrap.Init(configPath)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStoreAs(ctx, env, asEmail)
	if err != nil {
		return err
	}

	me, err := store.CurrentUser(ctx)
	if err != nil {
		return err
	}
	permissions, err := store.Permissions(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", me.ID)
	fmt.Fprintf(w, "Name\t%s\n", me.Name)
	fmt.Fprintf(w, "Email\t%s\n", me.Email)
	fmt.Fprintf(w, "Role\t%s\n", me.Role)
	if me.OrganizationID != "" {
		fmt.Fprintf(w, "Organization\t%s\n", me.OrganizationID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nPermissions")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RESOURCE\tACTION\n")
	for _, p := range permissions {
		fmt.Fprintf(w, "%s\t%s\n", p.Resource, p.Action)
	}
	return w.Flush()
}
