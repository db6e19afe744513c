package dashboard

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
		Use:   "dashboard",
		Short: "Show dashboard stats for a user",
		Long:  `Print the dashboard counters, recent tickets and recent activity as seen by the given user.`,
		RunE:  runDashboard,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&asEmail, "as", "", "Email of the user to view as (required)")
	cmd.MarkFlagRequired("as")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := bootstrap.Init(configPath)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStoreAs(ctx, env, asEmail)
	if err != nil {
		return err
	}

	board, err := store.Dashboard(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	s := board.Stats
	fmt.Fprintf(w, "Open tickets\t%d\n", s.OpenTickets)
	fmt.Fprintf(w, "Resolved tickets\t%d\n", s.ResolvedTickets)
	fmt.Fprintf(w, "Critical tickets\t%d\n", s.CriticalTickets)
	fmt.Fprintf(w, "Assigned to me\t%d\n", s.MyTickets)
	fmt.Fprintf(w, "Awaiting client\t%d\n", s.AwaitingClient)
	fmt.Fprintf(w, "Hours logged\t%.2f\n", s.TotalHours)
	fmt.Fprintf(w, "Pending approvals\t%d\n", s.PendingApprovals)
	fmt.Fprintf(w, "Organizations\t%d\n", s.Organizations)
	fmt.Fprintf(w, "Revenue\t%.2f\n", s.TotalRevenue)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nRecent tickets")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tSTATUS\tPRIORITY\tTITLE\n")
	for _, t := range board.RecentTickets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nRecent activity")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tTYPE\tDESCRIPTION\n")
	for _, a := range board.RecentActivities {
		fmt.Fprintf(w, "%s\t%s\t%s\n", store.Calendar().FormatDate(a.CreatedAt), a.Type, a.Description)
	}
	return w.Flush()
}
