package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/scoutroute/internal/app"
	"github.com/okian/scoutroute/internal/config"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/roster"
)

type planFlags struct {
	rosterPath string
	venuesPath string
	eventsPath string
	start      string
	end        string
	maxDrive   int
	priority   []string
	format     string
}

func newPlanCmd() *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a trip plan from local files and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.rosterPath, "roster", "", "roster YAML file (required)")
	cmd.Flags().StringVar(&f.venuesPath, "venues", "", "venue alias table YAML file")
	cmd.Flags().StringVar(&f.eventsPath, "events", "", "confirmed events YAML file")
	cmd.Flags().StringVar(&f.start, "start", "", "planning window start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.end, "end", "", "planning window end, YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&f.maxDrive, "max-drive", 0, "one-way drive radius in minutes (0 uses the configured default)")
	cmd.Flags().StringSliceVar(&f.priority, "priority", nil, "priority athlete name (at most two)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text or json")

	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runPlan(ctx context.Context, f planFlags) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", f.format)
	}

	start, err := time.Parse(time.DateOnly, f.start)
	if err != nil {
		return fmt.Errorf("bad --start %q: %w", f.start, err)
	}
	end, err := time.Parse(time.DateOnly, f.end)
	if err != nil {
		return fmt.Errorf("bad --end %q: %w", f.end, err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	opts, err := app.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	players, err := roster.Load(f.rosterPath)
	if err != nil {
		return err
	}
	if f.venuesPath != "" {
		resolver, err := roster.LoadVenues(f.venuesPath)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithResolver(resolver))
	}
	var confirmed []model.GameEvent
	if f.eventsPath != "" {
		confirmed, err = roster.LoadEvents(f.eventsPath)
		if err != nil {
			return err
		}
	}

	svc := app.New(opts...)

	plan, err := svc.Plan(ctx, app.PlanRequest{
		Roster:          players,
		ConfirmedEvents: confirmed,
		Start:           start,
		End:             end,
		MaxDriveMinutes: f.maxDrive,
		PriorityPlayers: f.priority,
		Progress: func(stage app.Stage) {
			fmt.Fprintf(os.Stderr, "... %s\n", stage)
		},
	})
	if err != nil {
		return err
	}

	if f.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	printPlan(plan)
	return nil
}

// printPlan renders a human-readable plan summary to stdout.
func printPlan(plan model.TripPlan) {
	fmt.Printf("Plan %s | coverage %.1f%%\n", plan.ID, plan.CoveragePercent)

	for _, pr := range plan.PriorityResults {
		line := fmt.Sprintf("priority %s: %s", pr.PlayerName, pr.Status)
		if pr.Reason != "" {
			line += " (" + pr.Reason + ")"
		}
		fmt.Println(line)
	}

	fmt.Printf("\nTrips (%d):\n", len(plan.Trips))
	for i, t := range plan.Trips {
		fmt.Printf("%2d. %s, anchor %s\n", i+1,
			t.AnchorEvent.Venue.Name, t.AnchorEvent.Date.Format(time.DateOnly))
		fmt.Printf("    days %s, venues %d, drive %d min, value %d\n",
			formatDays(t.SuggestedDays), t.VenueCount, t.TotalDriveMinutes, t.VisitValue)
		fmt.Printf("    athletes: %s\n", strings.Join(t.PlayerNames, ", "))
	}

	if len(plan.FlyInVisits) > 0 {
		fmt.Printf("\nFly-in candidates (%d):\n", len(plan.FlyInVisits))
		for _, v := range plan.FlyInVisits {
			fmt.Printf("  %s: %.0f km, ~%.1f h travel, athletes: %s\n",
				v.Venue.Name, v.DistanceKm, v.EstimatedTravelHours, strings.Join(v.PlayerNames, ", "))
		}
	}

	if len(plan.UnvisitablePlayers) > 0 {
		fmt.Printf("\nUnreachable (%d):\n", len(plan.UnvisitablePlayers))
		for _, u := range plan.UnvisitablePlayers {
			fmt.Printf("  %s: %s\n", u.Name, u.Reason)
		}
	}
}

func formatDays(days []time.Time) string {
	if len(days) == 0 {
		return "-"
	}
	first := days[0].Format(time.DateOnly)
	if len(days) == 1 {
		return first
	}
	return first + ".." + days[len(days)-1].Format(time.DateOnly)
}
