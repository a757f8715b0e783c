// Package root contains the root command for the application.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"shekelio/autocat/internal/config"
	"shekelio/autocat/internal/container"
	"shekelio/autocat/internal/logging"
)

var app *container.Container

// Cmd is the root command.
var Cmd = &cobra.Command{
	Use:   "autocat",
	Short: "Automatic categorization for bank and credit-card transactions.",
	Long: `autocat assigns categories to imported transactions using the user's own
history and keyword lists, with an optional AI fallback for anything the
local data cannot resolve.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		c, err := container.NewContainer(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("initializing application: %w", err)
		}
		app = c
		logging.SetLogger(c.Logger())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			if err := app.Close(); err != nil {
				app.Logger().WithError(err).Warn("failed to release resources")
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// App returns the wired dependency container. Only valid inside a command
// Run function, after PersistentPreRunE has built it.
func App() *container.Container {
	return app
}

// SetApp replaces the container, for command tests.
func SetApp(c *container.Container) {
	app = c
}
