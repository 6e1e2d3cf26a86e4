package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmtykrqqy6-ship-it/gigstaffpro-sub000/pkg/core/services"
)

// CreateEventCmd creates the createEvent command
func CreateEventCmd(app *AppContext) *cobra.Command {
	var (
		req       services.CreateEventRequest
		positions []string
	)

	cmd := &cobra.Command{
		Use:   "createEvent <name> <date> <start_time>",
		Short: "Create an event (or a recurring series) needing staff",
		Example: `  createEvent "Casino Gala" 2026-12-31 18:00 --end 23:00 --venue "Grand Geneva" \
    --lake-geneva --position "Blackjack Dealer=4" --position Host=1
  createEvent "Poker League" 2026-11-05 19:00 --end 22:00 --position "Poker Dealer=2" \
    --repeat "FREQ=WEEKLY;COUNT=8"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parsePositions(positions)
			if err != nil {
				return err
			}
			req.Name, req.Date, req.StartTime = args[0], args[1], args[2]
			req.Positions = parsed

			// One event, or the whole series when --repeat is set
			events, err := services.CreateEvent(app.Ctx, app.Database, app.Logger, req, services.CreateEventOptions{
				RecurrenceLimit: app.Cfg.RecurrenceLimit,
				HolidayRules:    app.Cfg.HolidayRules,
			})
			if err != nil {
				return err
			}

			// Display created events
			fmt.Printf("\n✓ Created %d event(s)\n\n", len(events))
			for _, e := range events {
				flags := ""
				if e.IsLakeGeneva {
					flags += " [Lake Geneva]"
				}
				if e.IsHoliday {
					flags += " [Holiday]"
				}
				fmt.Printf("  %s  %s %s  %s%s\n", e.ID, e.Date, e.StartTime, e.Name, flags)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time HH:MM (may be past midnight)")
	cmd.Flags().StringVar(&req.Venue, "venue", "", "Venue address, used for distance lookups")
	cmd.Flags().BoolVar(&req.IsLakeGeneva, "lake-geneva", false, "Apply the Lake Geneva bonus")
	cmd.Flags().BoolVar(&req.IsHoliday, "holiday", false, "Apply the holiday multiplier")
	cmd.Flags().StringArrayVar(&positions, "position", nil, "Position and headcount as Name=count (repeatable)")
	cmd.Flags().StringVar(&req.Recurrence, "repeat", "", "RRULE for a recurring series, e.g. FREQ=WEEKLY;COUNT=6")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Free-text notes")

	return cmd
}
