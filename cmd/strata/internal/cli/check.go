package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/document"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	columnStyle = lipgloss.NewStyle().Width(14)
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <document>",
		Short: "Validate a layout document and show how its anchors resolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			_, ctx := build.Run(doc.Builder())

			resolution := make(map[string]string, len(doc.Anchors))
			for _, b := range ctx.Bindings() {
				if b.Declared {
					resolution[b.ID.Name()] = "declared"
				} else {
					resolution[b.ID.Name()] = "allocated"
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s, version %s)\n",
				headerStyle.Render("document"), args[0], document.FormatOf(args[0]), doc.Version)
			if len(doc.Anchors) == 0 {
				fmt.Fprintln(out, "no anchors")
				return nil
			}
			fmt.Fprintln(out, row(headerStyle, "anchor", "kind", "resolution"))
			for _, name := range doc.AnchorNames() {
				res, ok := resolution[name]
				if !ok {
					// Not visible from the root: either scoped or unused.
					res = "scoped or unused"
				}
				fmt.Fprintln(out, row(lipgloss.NewStyle(), name, anchorKind(doc.Anchors[name]), res))
			}
			return nil
		},
	}
}

func row(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			rendered[i] = style.Render(c)
			continue
		}
		rendered[i] = columnStyle.Inherit(style).Render(c)
	}
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, rendered...), " ")
}

func anchorKind(spec document.AnchorSpec) string {
	switch {
	case spec.Text != nil:
		return "text"
	case spec.Number != nil:
		return "number"
	default:
		return "direction"
	}
}
