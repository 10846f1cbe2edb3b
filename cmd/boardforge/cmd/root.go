package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boardforge",
	Short: "BoardForge - PCB layer compositing with component artwork",
	Long: `BoardForge composites exported PCB layer drawings (board outline,
solder mask, silkscreen, solder paste) and a component position table
into rendered board views, with footprint artwork placed at the
correct position, rotation and scale for both sides.

Examples:
  boardforge render -f ./gerbers -c ./artwork    # Render top, bottom and combined views
  boardforge config -f ./gerbers -c ./artwork    # Generate the component mapping table only`,
	Version: "1.0.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
