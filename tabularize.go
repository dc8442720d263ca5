package tablit

import (
	"fmt"
	"regexp"
)

// TabularizeOptions configures token-stream segmentation.
type TabularizeOptions struct {
	// Width overrides the auto-detected column count. When zero, the count of
	// divider-like tokens in the stream (one per column, seen once across the
	// divider row) is used.
	Width int

	// Divider is the regexp pattern recognizing divider cells by token name.
	// Defaults to [DefaultDividerPattern].
	Divider string

	// Separator, when non-nil, replaces the default cell-boundary test
	// (token kind == TokenSeparator).
	Separator func(Token) bool
}

// Tabularize groups a flat token sequence into rows of uniform width. A row
// spans width+1 separators: one before the first cell, one between each pair,
// one after the last. An empty span between separators yields a nil cell, a
// single token its value, multiple tokens a []any. A row whose every cell is
// divider-like collapses to the [DividerLine] sentinel.
//
// A stream whose separators do not partition exactly is a structural error;
// there is no recovery.
func Tabularize(opts TabularizeOptions, tokens []Token) (Table, error) {
	isSep := opts.Separator
	if isSep == nil {
		isSep = func(t Token) bool { return t.Kind == TokenSeparator }
	}
	divRE := defaultDividerRE
	if opts.Divider != "" {
		re, err := regexp.Compile(opts.Divider)
		if err != nil {
			return nil, fmt.Errorf("%w: bad divider pattern %q: %v", ErrStructural, opts.Divider, err)
		}
		divRE = re
	}

	width := opts.Width
	if width == 0 {
		width = detectWidth(tokens, isSep, divRE)
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: no divider row and no explicit width", ErrStructural)
	}

	var table Table
	i := 0
	for i < len(tokens) {
		if !isSep(tokens[i]) {
			return nil, fmt.Errorf("%w: expected separator at token %d, got %q", ErrStructural, i, tokens[i].Name)
		}
		i++
		cells := make([]any, 0, width)
		var span []any
		for len(cells) < width {
			if i >= len(tokens) {
				return nil, fmt.Errorf("%w: stream ends mid-row after %d cells", ErrStructural, len(cells))
			}
			t := tokens[i]
			i++
			if isSep(t) {
				cells = append(cells, spanValue(span))
				span = nil
				continue
			}
			span = append(span, t.cellValue())
		}
		table = append(table, collapseDivider(cells, divRE))
	}
	return table, nil
}

// detectWidth counts divider-like tokens in the widest divider run: one
// divider token per column, so the longest run of divider cells gives the
// column count even when the table carries more than one divider row. Within
// a row, cells are set apart by exactly one separator; two separators in a
// row are the seam between one row's trailing separator and the next row's
// leading one, so they end the run. A data row whose last cell happens to be
// divider-like therefore cannot bleed its count into the divider row below.
func detectWidth(tokens []Token, isSep func(Token) bool, divRE *regexp.Regexp) int {
	width, run, seps := 0, 0, 0
	for _, t := range tokens {
		switch {
		case isSep(t):
			seps++
			if seps > 1 {
				run = 0
			}
		case dividerLike(t.cellValue(), divRE):
			seps = 0
			run++
			if run > width {
				width = run
			}
		default:
			seps = 0
			run = 0
		}
	}
	return width
}

func spanValue(span []any) any {
	switch len(span) {
	case 0:
		return nil
	case 1:
		return span[0]
	default:
		return span
	}
}

func collapseDivider(cells []any, divRE *regexp.Regexp) Row {
	for _, c := range cells {
		if !dividerLike(c, divRE) {
			return Row{Cells: cells}
		}
	}
	return DividerLine
}
