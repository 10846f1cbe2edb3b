package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate the component mapping table without rendering",
	Long: `Loads the position table, resolves every component against the
artwork catalog, and persists the mapping table
(component_config.json) in the layer folder. Edit that file to
customize mappings; manual edits take priority over heuristic results
on the next run.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&layerFolder, "files", "f", "", "path to the exported layer files folder (required)")
	configCmd.Flags().StringVarP(&artworkFolder, "components", "c", "", "path to the component artwork folder (required)")
	configCmd.MarkFlagRequired("files")
	configCmd.MarkFlagRequired("components")
}

func runConfig(cmd *cobra.Command, args []string) error {
	_, resolver, _, err := prepare(layerFolder, artworkFolder)
	if err != nil {
		return err
	}

	config := resolver.Config()
	summary := config.Summary(resolver.Catalog())

	fmt.Println("\nComponent mapping summary:")
	fmt.Printf("  Available artwork files: %d\n", summary.Available)
	fmt.Printf("  Total components: %d\n", summary.Total)
	fmt.Printf("  Mapped components: %d\n", summary.Mapped)
	fmt.Printf("  Unmapped components: %d\n", len(summary.Unmapped))
	if len(summary.Unmapped) > 0 {
		shown := summary.Unmapped
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fmt.Printf("  Unmapped: %s\n", strings.Join(shown, ", "))
		if rest := len(summary.Unmapped) - len(shown); rest > 0 {
			fmt.Printf("  ... and %d more\n", rest)
		}
	}

	fmt.Printf("\n✓ Component configuration generated\n")
	fmt.Printf("Edit %s to customize mappings\n", config.Path())
	return nil
}
