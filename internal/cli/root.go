package cli

import (
	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/spf13/cobra"
)

// App carries the rule configuration shared by all subcommands.
type App struct {
	Compliance config.ComplianceConfig
	Fatigue    config.FatigueConfig
}

// NewRootCmd creates the top-level "rosterctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rosterctl",
		Short: "Offline roster compliance and fatigue checker",
		Long: "rosterctl evaluates shift rosters from CSV files against the " +
			"working-hours rules and the fatigue risk model, without a server " +
			"or database. Rule thresholds come from the same RULE_* environment " +
			"variables the server reads.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newCheckCmd(app),
		newFRICmd(app),
		newExportCmd(app),
	)

	return root
}
