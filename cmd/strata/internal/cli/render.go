package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/document"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/raster"
)

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a layout document to PNG",
		Long: `Render builds the document's tree once and draws a single frame to a PNG.

Size, background and scale default to the render section of strata.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			logger := loggerFromContext(cmd.Context())

			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			bg, err := document.ParseColor(cfg.Render.Background)
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			root := build.Build(doc.Builder())
			canvas := raster.Render(root, element.NoResources, cfg.Render.Width, cfg.Render.Height, bg)

			if output == "" {
				output = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".png"
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			if scale := cfg.Render.Scale; scale != 1 {
				w := int(math.Round(float64(cfg.Render.Width) * scale))
				h := int(math.Round(float64(cfg.Render.Height) * scale))
				err = raster.WritePNG(f, canvas.Scaled(max(w, 1), max(h, 1)))
			} else {
				err = canvas.WritePNG(f)
			}
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			logger.Info("rendered", "document", args[0], "output", output,
				"width", cfg.Render.Width, "height", cfg.Render.Height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default <document>.png)")
	cmd.Flags().Int("width", 0, "frame width in pixels")
	cmd.Flags().Int("height", 0, "frame height in pixels")
	cmd.Flags().String("background", "", "background colour as #RRGGBB[AA]")
	cmd.Flags().Float64("scale", 0, "scale factor applied to the written image")
	return cmd
}
