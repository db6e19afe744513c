package invoices

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	billingusecases "github.com/thinkartha/smileybox/internal/application/billing/usecases"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/bootstrap"
)

var (
	configPath string
	asEmail    string
	orgID      string
	month      int
	year       int
	rate       float64
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Invoice tools",
		Long:  `List stored invoices and preview what an organization would be billed.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&asEmail, "as", "", "Email of the user to act as (required)")
	cmd.MarkPersistentFlagRequired("as")

	cmd.AddCommand(
		newPreviewCommand(),
		newListCommand(),
	)

	return cmd
}

func newPreviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview an organization's invoice",
		Long:  `Total the resolved and closed tickets of an organization without storing an invoice.`,
		RunE:  runPreview,
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Organization id (required)")
	cmd.Flags().IntVar(&month, "month", 0, "Billing month, 1-12 (default: current month)")
	cmd.Flags().IntVar(&year, "year", 0, "Billing year (default: current year)")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate (default: store rate)")
	cmd.MarkFlagRequired("org")

	return cmd
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored invoices",
		Long:  `List the invoices the user may see, newest first.`,
		RunE:  runList,
	}

	cmd.Flags().StringVar(&orgID, "org", "", "Only invoices of this organization")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := bootstrap.Init(configPath)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStoreAs(ctx, env, asEmail)
	if err != nil {
		return err
	}

	preview, err := store.PreviewInvoice(ctx, billingusecases.PreviewInvoiceQuery{
		OrganizationID: orgID,
		Month:          month,
		Year:           year,
		RatePerHour:    rate,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Organization\t%s\n", preview.OrganizationID)
	fmt.Fprintf(w, "Period\t%04d-%02d\n", preview.Year, preview.Month)
	fmt.Fprintf(w, "Tickets closed\t%d\n", preview.TicketsClosed)
	fmt.Fprintf(w, "Hours\t%.2f\n", preview.TotalHours)
	fmt.Fprintf(w, "Rate\t%.2f\n", preview.RatePerHour)
	fmt.Fprintf(w, "Total\t%.2f\n", preview.TotalAmount)
	return w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := bootstrap.Init(configPath)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStoreAs(ctx, env, asEmail)
	if err != nil {
		return err
	}

	list, err := store.ListInvoices(ctx, orgID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tORG\tPERIOD\tSTATUS\tTICKETS\tHOURS\tRATE\tTOTAL\n")
	for _, inv := range list {
		fmt.Fprintf(w, "%s\t%s\t%04d-%02d\t%s\t%d\t%.2f\t%.2f\t%.2f\n",
			inv.ID, inv.OrganizationID, inv.Year, inv.Month, inv.Status,
			inv.TicketsClosed, inv.TotalHours, inv.RatePerHour, inv.TotalAmount)
	}
	return w.Flush()
}
