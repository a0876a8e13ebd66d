package cli

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/document"
	"github.com/go-drift/strata/pkg/host"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <document>",
		Short: "Run a layout document in the terminal",
		Long: `View hosts the document's tree full-screen. Key presses, resizes and
ticks are dispatched to every element; the frame is redrawn after each one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			bg, err := document.ParseColor(cfg.Render.Background)
			if err != nil {
				return err
			}

			root, bctx := build.Run(doc.Builder())
			logger.Debug("built tree", "bindings", len(bctx.Bindings()))

			return host.Run(ctx, root,
				host.WithTitle(cfg.App.Name),
				host.WithQuitKeys(cfg.View.QuitKeys...),
				host.WithTick(cfg.View.Tick),
				host.WithBackground(bg),
				host.WithLogger(logger),
			)
		},
	}

	cmd.Flags().StringSlice("quit", nil, "keys that end the program (default ctrl+c,q)")
	cmd.Flags().Duration("tick", 0, "interval between tick events, 0 to disable")
	cmd.Flags().String("background", "", "background colour as #RRGGBB[AA]")
	return cmd
}
