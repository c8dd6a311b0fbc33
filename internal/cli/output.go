package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable returns a rounded table writer rendering to w. Columns listed in
// rightAligned (1-based) are right aligned.
func newTable(w io.Writer, rightAligned ...int) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		configs = append(configs, table.ColumnConfig{
			Number:      n,
			Align:       text.AlignRight,
			AlignFooter: text.AlignRight,
		})
	}
	t.SetColumnConfigs(configs)
	return t
}

func bold(s string) string {
	return text.Bold.Sprint(s)
}
