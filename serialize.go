package tablit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Record is one uniform record for [Serialize].
type Record map[Keyword]any

// SerializeOptions controls column order in serialized output.
type SerializeOptions struct {
	// Keys is an explicit column order. Keys absent from the records emit
	// empty cells.
	Keys []Keyword

	// Less orders the record keys when Keys is not given. Default is
	// lexical order.
	Less func(a, b Keyword) bool
}

// Serialize renders uniform records as aligned literal-table source: a
// keyword header row, a divider row, and one row per record. The output
// re-parses through Tokenize → Tabularize → Interpret to the same headers
// and data.
func Serialize(opts SerializeOptions, records []Record) string {
	if len(records) == 0 {
		return ""
	}
	keys := opts.Keys
	if keys == nil {
		for k := range records[0] {
			keys = append(keys, k)
		}
		less := opts.Less
		if less == nil {
			less = func(a, b Keyword) bool { return a < b }
		}
		slices.SortFunc(keys, func(a, b Keyword) int {
			if less(a, b) {
				return -1
			}
			if less(b, a) {
				return 1
			}
			return 0
		})
	}

	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = ":" + string(k)
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(keys))
		for c, k := range keys {
			row[c] = formatCell(rec[k])
		}
		rows[i] = row
	}

	widths := serializeWidths(header, rows)

	var sb strings.Builder
	writeSourceRow(&sb, header, widths)
	divider := make([]string, len(widths))
	for i, w := range widths {
		divider[i] = strings.Repeat("-", w)
	}
	writeSourceRow(&sb, divider, widths)
	for _, row := range rows {
		writeSourceRow(&sb, row, widths)
	}
	return sb.String()
}

// serializeWidths computes per-column display widths, floored at the divider
// minimum of three dashes.
func serializeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	return widths
}

func writeSourceRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(padCell(cell, w))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func padCell(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// formatCell renders one value as literal-table source. Strings are quoted
// so they survive the bare-word lexer; nil is an empty cell.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", t)
	case Keyword:
		return ":" + string(t)
	case Symbol:
		return string(t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
