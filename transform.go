package tablit

import (
	"fmt"
	"slices"
	"strings"
)

// TransformOptions configures post-processing and projection of an
// [Interpretation].
type TransformOptions struct {
	// RemoveBlankLines drops data rows whose every cell is nil (along with
	// the paired row header, when row headers are present).
	RemoveBlankLines bool

	// Coercions are applied per column on top of the coercions the
	// interpretation already carries; on key overlap these win.
	Coercions map[any]CoerceFunc

	// Renames maps column-header keys to replacement keys, applied before
	// namespacing.
	Renames map[any]any

	// Namespace qualifies every column-header key ("ns/key") after renames.
	Namespace string

	// Format selects the projection; see the Format constants.
	Format Format
}

// Cell is one data cell of the FormatCells projection.
type Cell struct {
	ColHeader any
	RowHeader any
	Value     any
}

// Relation is a set of rows: ordered for determinism, deduplicated on
// insert by canonical cell-key string.
type Relation []map[any]any

// Contains reports whether the relation holds a row equal to m.
func (rel Relation) Contains(m map[any]any) bool {
	key := relKey(m)
	for _, row := range rel {
		if relKey(row) == key {
			return true
		}
	}
	return false
}

// Transform post-processes an interpretation (blank-row removal, coercions,
// renames, namespacing, in that fixed order) and projects it per
// opts.Format. It is a pure function: the input interpretation is not
// modified.
func Transform(opts TransformOptions, in Interpretation) (any, error) {
	work := cloneInterpretation(in)

	if opts.RemoveBlankLines {
		removeBlankRows(&work)
	}
	applyCoercions(&work, opts.Coercions)
	for i, h := range work.ColHeaders {
		if r, ok := opts.Renames[headerKey(h)]; ok {
			work.ColHeaders[i] = r
		}
	}
	if opts.Namespace != "" {
		for i, h := range work.ColHeaders {
			work.ColHeaders[i] = qualify(opts.Namespace, h)
		}
	}

	switch opts.Format {
	case FormatMap:
		return map[string]any{"col_headers": work.ColHeaders, "data": work.Data}, nil
	case FormatMaps:
		return projectMaps(work), nil
	case FormatTable:
		return projectTable(work), nil
	case FormatRelation:
		return projectRelation(work), nil
	case FormatCells:
		return projectCells(work), nil
	case FormatDefault:
		out := map[string]any{"data": work.Data}
		if len(work.ColHeaders) > 0 {
			out["col_headers"] = work.ColHeaders
		}
		if len(work.RowHeaders) > 0 {
			out["row_headers"] = work.RowHeaders
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func cloneInterpretation(in Interpretation) Interpretation {
	out := Interpretation{
		ColHeaders: append([]any(nil), in.ColHeaders...),
		RowHeaders: append([]any(nil), in.RowHeaders...),
		Data:       make([][]any, len(in.Data)),
	}
	for i, row := range in.Data {
		out.Data[i] = append([]any(nil), row...)
	}
	if in.Coercions != nil {
		out.Coercions = make(map[any]CoerceFunc, len(in.Coercions))
		for k, v := range in.Coercions {
			out.Coercions[k] = v
		}
	}
	return out
}

func removeBlankRows(in *Interpretation) {
	var data [][]any
	var rowHdrs []any
	for i, row := range in.Data {
		if (Row{Cells: row}).IsBlank() {
			continue
		}
		data = append(data, row)
		if i < len(in.RowHeaders) {
			rowHdrs = append(rowHdrs, in.RowHeaders[i])
		}
	}
	in.Data = data
	if in.RowHeaders != nil {
		in.RowHeaders = rowHdrs
	}
}

func applyCoercions(in *Interpretation, extra map[any]CoerceFunc) {
	merged := make(map[any]CoerceFunc, len(in.Coercions)+len(extra))
	for k, fn := range in.Coercions {
		merged[k] = fn
	}
	for k, fn := range extra {
		merged[k] = fn
	}
	for c, h := range in.ColHeaders {
		fn, ok := merged[headerKey(h)]
		if !ok {
			continue
		}
		for _, row := range in.Data {
			if c < len(row) {
				row[c] = fn(row[c])
			}
		}
	}
}

func qualify(ns string, h any) any {
	switch v := h.(type) {
	case Keyword:
		return Keyword(ns + "/" + string(v))
	case string:
		return ns + "/" + v
	default:
		return h
	}
}

func projectMaps(in Interpretation) []map[any]any {
	out := make([]map[any]any, len(in.Data))
	for i, row := range in.Data {
		out[i] = zipRow(in.ColHeaders, row)
	}
	return out
}

func zipRow(headers []any, row []any) map[any]any {
	m := make(map[any]any, len(headers))
	for c, h := range headers {
		var v any
		if c < len(row) {
			v = row[c]
		}
		m[headerKey(h)] = v
	}
	return m
}

func projectTable(in Interpretation) [][]any {
	out := make([][]any, 0, len(in.Data)+1)
	out = append(out, in.ColHeaders)
	return append(out, in.Data...)
}

func projectRelation(in Interpretation) Relation {
	var rel Relation
	seen := make(map[string]bool)
	for _, row := range in.Data {
		m := zipRow(in.ColHeaders, row)
		key := relKey(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		rel = append(rel, m)
	}
	return rel
}

// relKey builds a canonical string for set membership. Header order is not
// recoverable from the map, so pairs are sorted by printed form. Keys and
// values are individually quoted so delimiter characters inside a value can
// never make two distinct rows canonicalize to the same string.
func relKey(m map[any]any) string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, fmt.Sprintf("%q=%q", fmt.Sprint(k), fmt.Sprint(v)))
	}
	slices.Sort(parts)
	return strings.Join(parts, ";")
}

func projectCells(in Interpretation) []Cell {
	var out []Cell
	for r, row := range in.Data {
		var rowHdr any
		if r < len(in.RowHeaders) {
			rowHdr = in.RowHeaders[r]
		}
		for c, h := range in.ColHeaders {
			var v any
			if c < len(row) {
				v = row[c]
			}
			out = append(out, Cell{ColHeader: h, RowHeader: rowHdr, Value: v})
		}
	}
	return out
}
