// Package cli implements the strata command-line interface.
//
// The root command loads configuration once in PersistentPreRunE and
// attaches it, together with the logger, to the command context. Every
// subcommand reads both back with configFromContext and loggerFromContext.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/strata/cmd/strata/internal/config"
	"github.com/go-drift/strata/pkg/document"
	"github.com/go-drift/strata/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg *config.Resolved) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) *config.Resolved {
	cfg, _ := ctx.Value(configKey).(*config.Resolved)
	return cfg
}

// flagKeys maps command-line flags to config keys. Flags a command does not
// define are skipped.
var flagKeys = map[string]string{
	"verbose":    "log.verbose",
	"width":      "render.width",
	"height":     "render.height",
	"background": "render.background",
	"scale":      "render.scale",
	"quit":       "view.quit_keys",
	"tick":       "view.tick",
}

// NewRootCommand builds the command tree. Logs go to stderr; command output
// goes to the command's configured writer.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "strata",
		Short: "Strata renders and runs layered element trees",
		Long: `Strata builds retained element trees from YAML or TOML layout documents.

It can render a document to PNG, host it interactively in the terminal,
or check how its anchors resolve.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			for name, key := range flagKeys {
				if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return err
				}
			}
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loader.Load(dir)
			if err != nil {
				return err
			}

			level := log.InfoLevel
			if cfg.Log.Verbose {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)
			errors.SetHandler(errors.NewLogHandler(logger))
			if cfg.File != "" {
				logger.Debug("loaded config", "file", cfg.File)
			}

			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("strata %s (built %s)\n", Version, BuildTime))
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

func loadDocument(cmd *cobra.Command, path string) (*document.Document, error) {
	logger := loggerFromContext(cmd.Context())
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded document", "path", path, "format", document.FormatOf(path), "anchors", len(doc.Anchors))
	return doc, nil
}
