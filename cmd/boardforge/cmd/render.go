package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/boardforge/pkg/placement"
	"github.com/OpenTraceLab/boardforge/pkg/render"
)

// Output filenames inside <layer folder>/output.
const (
	topOutputName      = "pcb_top_with_components.svg"
	bottomOutputName   = "pcb_bottom_with_components.svg"
	combinedOutputName = "pcb_combined_view.svg"
)

var (
	layerFolder   string
	artworkFolder string
	colorValues   []string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render board views with component artwork",
	Long: `Renders one composite SVG per board side plus a side-by-side
combined view into <layer folder>/output.

Layer files are discovered by filename pattern (*-Edge_Cuts.svg,
*-F_Mask.svg, ... , *-pos.csv). The board outline and the position
table are required; other layers are rendered when present.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&layerFolder, "files", "f", "", "path to the exported layer files folder (required)")
	renderCmd.Flags().StringVarP(&artworkFolder, "components", "c", "", "path to the component artwork folder (required)")
	renderCmd.Flags().StringSliceVar(&colorValues, "colors", nil, "render colors: BG,PCB,SILK,PAD (e.g. '#1a1a1a,#2d5a3d,#ffffff,#ffd700')")
	renderCmd.MarkFlagRequired("files")
	renderCmd.MarkFlagRequired("components")
}

func runRender(cmd *cobra.Command, args []string) error {
	palette := render.DefaultPalette()
	if colorValues != nil {
		var err error
		palette, err = render.PaletteFromColors(colorValues)
		if err != nil {
			return err
		}
	}

	layers, resolver, components, err := prepare(layerFolder, artworkFolder)
	if err != nil {
		return err
	}

	outDir := filepath.Join(layerFolder, "output")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	compositor := render.NewCompositor(palette, resolver)
	topOut := filepath.Join(outDir, topOutputName)
	bottomOut := filepath.Join(outDir, bottomOutputName)

	success := true
	if err := compositor.CompositeSide(layers, placement.SideTop, components, topOut); err != nil {
		fmt.Printf("✗ Top render failed: %v\n", err)
		success = false
	} else {
		fmt.Printf("✓ Rendered top side: %s\n", topOutputName)
	}
	if err := compositor.CompositeSide(layers, placement.SideBottom, components, bottomOut); err != nil {
		fmt.Printf("✗ Bottom render failed: %v\n", err)
		success = false
	} else {
		fmt.Printf("✓ Rendered bottom side: %s\n", bottomOutputName)
	}

	if success {
		combinedOut := filepath.Join(outDir, combinedOutputName)
		if err := render.CombineSides(topOut, bottomOut, combinedOut, palette.Background); err != nil {
			fmt.Printf("[WARN] Could not generate combined view: %v\n", err)
		} else {
			fmt.Printf("✓ Rendered combined view: %s\n", combinedOutputName)
		}
	}

	fmt.Printf("\nOutput folder: %s\n", outDir)
	fmt.Printf("Component config: %s\n", resolver.Config().Path())
	if !success {
		return fmt.Errorf("some renders failed to generate")
	}
	return nil
}

// prepare runs the shared front half of both commands: discover layer
// files, build the artwork catalog, load positions and sync the
// persisted mapping table.
func prepare(filesDir, componentsDir string) (render.LayerSet, *placement.Resolver, []placement.Component, error) {
	layers, err := render.FindLayerFiles(filesDir)
	if err != nil {
		return render.LayerSet{}, nil, nil, err
	}
	if layers.Outline == "" {
		return render.LayerSet{}, nil, nil, fmt.Errorf("board outline (Edge_Cuts) file not found in %s", filesDir)
	}
	if layers.Positions == "" {
		return render.LayerSet{}, nil, nil, fmt.Errorf("position table (*-pos.csv) not found in %s", filesDir)
	}

	catalog, err := placement.NewCatalog(componentsDir)
	if err != nil {
		return render.LayerSet{}, nil, nil, err
	}
	config := placement.LoadConfig(filesDir)

	components, err := placement.LoadPositions(layers.Positions)
	if err != nil {
		return render.LayerSet{}, nil, nil, err
	}
	if len(components) == 0 {
		return render.LayerSet{}, nil, nil, fmt.Errorf("no components loaded from %s", layers.Positions)
	}

	resolver := placement.NewResolver(catalog, config, placement.DefaultRules())
	if err := resolver.SyncConfig(components); err != nil {
		fmt.Printf("[WARN] %v\n", err)
	}
	return layers, resolver, components, nil
}
