package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thinkartha/smileybox/internal/interfaces/cli/bootstrap"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/dashboard"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/invoices"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/seed"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/tickets"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/whoami"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "smileybox",
		Short:        "SmileyBox - support portal store tools",
		Long:         `SmileyBox keeps organizations, users, tickets, invoices and the activity feed of a support portal. These commands load a seed file and inspect it as a given user.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&bootstrap.Verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		seed.NewCommand(),
		dashboard.NewCommand(),
		tickets.NewCommand(),
		whoami.NewCommand(),
		invoices.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
