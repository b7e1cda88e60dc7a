package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brightside-dev/goodnews/internal/cli"
	"github.com/brightside-dev/goodnews/internal/config"
)

func indicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List configured indicators",
		Long:  `Display every configured indicator with its favorable direction, milestone thresholds and unit.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			fmt.Println(cli.FormatTitle("Configured Indicators"))
			for _, ind := range settings.Indicators {
				arrow := "↑ higher is better"
				if ind.GoodDirection == config.DirectionDown {
					arrow = "↓ lower is better"
				}

				thresholds := make([]string, len(ind.Milestones))
				for i, m := range ind.Milestones {
					thresholds[i] = fmt.Sprintf("%g", m.Value)
				}

				content := fmt.Sprintf("Direction:  %s\n", arrow) +
					fmt.Sprintf("Source:     %s\n", ind.URL) +
					fmt.Sprintf("Column:     %s\n", ind.ValueColumn) +
					fmt.Sprintf("Milestones: %s\n", strings.Join(thresholds, ", ")) +
					fmt.Sprintf("Unit:       %s", ind.Unit)
				fmt.Println(cli.RenderBox(fmt.Sprintf("%s (%s)", ind.DisplayName, ind.Name), content))
			}
			return nil
		},
	}
}
