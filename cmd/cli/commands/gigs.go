package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// GigsCmd creates the gigs command
func GigsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gigs <worker_id>",
		Short: "List a worker's upcoming and past gigs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gigs, err := services.ViewWorkerGigs(app.Ctx, app.Database, app.Logger, args[0], time.Now().Format("2006-01-02"))
			if err != nil {
				return err
			}

			// Display gigs
			fmt.Printf("\n%s\n", gigs.Worker.FullName())
			printGigs("Upcoming", gigs.Upcoming)
			printGigs("Past", gigs.Past)
			fmt.Println()
			return nil
		},
	}
}

func printGigs(title string, gigs []services.Gig) {
	fmt.Printf("\n%s (%d):\n", title, len(gigs))
	for _, g := range gigs {
		fmt.Printf("  %s %s  %-28s %-18s %10s  %s\n",
			g.Event.Date, g.Event.StartTime, g.Event.Name, g.Assignment.Position,
			money(g.Assignment.TotalPay), g.Assignment.PaymentStatus)
	}
}
