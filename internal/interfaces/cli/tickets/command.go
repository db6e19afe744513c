package tickets

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ticketusecases "github.com/thinkartha/smileybox/internal/application/ticket/usecases"
	"github.com/thinkartha/smileybox/internal/interfaces/cli/bootstrap"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

var (
	configPath string
	asEmail    string
	status     string
	priority   string
	category   string
	search     string
	page       int
	pageSize   int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List the tickets a user can see",
		Long:  `List tickets newest first, filtered to what the given user's role may see.`,
		RunE:  runTickets,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&asEmail, "as", "", "Email of the user to view as (required)")
	cmd.Flags().StringVar(&status, "status", "", "Only tickets in this status")
	cmd.Flags().StringVar(&priority, "priority", "", "Only tickets with this priority")
	cmd.Flags().StringVar(&category, "category", "", "Only tickets in this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive match on id, title or description")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Tickets per page, at most 100")
	cmd.MarkFlagRequired("as")

	return cmd
}

func runTickets(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := bootstrap.Init(configPath)
	if err != nil {
		return err
	}
	store, err := bootstrap.OpenStoreAs(ctx, env, asEmail)
	if err != nil {
		return err
	}

	items, err := store.ListTickets(ctx, ticketusecases.ListTicketsQuery{
		Status:   status,
		Priority: priority,
		Category: category,
		Search:   search,
	})
	if err != nil {
		return err
	}

	p := utils.ValidatePagination(page, pageSize)
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tORG\tSTATUS\tPRIORITY\tCATEGORY\tASSIGNEE\tHOURS\tTITLE\n")
	for _, t := range utils.Paginate(items, p) {
		assignee := "-"
		if t.AssignedTo != nil {
			assignee = *t.AssignedTo
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			t.ID, t.OrganizationID, t.Status, t.Priority, t.Category, assignee, t.HoursWorked, t.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "page %d of %d, %d ticket(s)\n", p.Page, utils.TotalPages(len(items), p.PageSize), len(items))
	return nil
}
