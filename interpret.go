package tablit

import "fmt"

// CoerceFunc converts every value in one column during [Transform].
type CoerceFunc func(any) any

// IndexSet selects header rows or columns by index. A nil set means
// auto-detect; a non-nil empty set means none. Out-of-range indices are
// silently ignored (author-controlled constants, not runtime input).
type IndexSet []int

// Indices builds an explicit IndexSet. Indices() is the explicit empty set.
func Indices(idxs ...int) IndexSet {
	if idxs == nil {
		return IndexSet{}
	}
	return IndexSet(idxs)
}

// InterpretOptions configures how [Interpret] slices a table. The zero value
// auto-detects everything from structural cues.
type InterpretOptions struct {
	// ColHeaderIdxs selects the column-header rows. Auto: every row before
	// the first divider (excluding a detected coercion row), or just the
	// first row when the table has no divider.
	ColHeaderIdxs IndexSet

	// RowHeaderIdxs selects the row-header columns. Auto: zero columns when
	// the first row is a divider, otherwise the count of leading nil cells
	// in the first row.
	RowHeaderIdxs IndexSet

	// CoercionIdxs selects the coercion row. Auto: the row immediately
	// preceding a divider, when at least one of its cells is a coercion
	// function; otherwise none.
	CoercionIdxs IndexSet
}

// Interpretation is the structured view of a table: headers and data are
// disjoint partitions of the original rows, with all divider sentinels
// stripped. A header region one row (or column) tall presents as a flat
// sequence; N>1 rows present as per-position []any tuples. RowHeaders is
// positionally zipped with Data by row index.
type Interpretation struct {
	ColHeaders []any
	RowHeaders []any
	Coercions  map[any]CoerceFunc
	Data       [][]any
}

// Interpret slices a tabularized table into column headers, row headers, a
// coercion row, and the data block. Indices in options refer to the table as
// produced by [Tabularize], divider rows included. Interpret raises nothing:
// malformed explicit indices degrade to empty slices.
func Interpret(opts InterpretOptions, table Table) Interpretation {
	coerceIdxs := opts.CoercionIdxs
	if coerceIdxs == nil {
		coerceIdxs = autoCoercionIdxs(table)
	}
	coerceSet := toSet(coerceIdxs)

	colIdxs := opts.ColHeaderIdxs
	if colIdxs == nil {
		colIdxs = autoColHeaderIdxs(table, coerceSet)
	}
	colSet := toSet(colIdxs)

	rowIdxs := opts.RowHeaderIdxs
	if rowIdxs == nil {
		rowIdxs = autoRowHeaderIdxs(table)
	}
	rowSet := toSet(rowIdxs)

	var colRows, coerceRows, data [][]any
	for i, r := range table {
		if r.IsDivider() {
			continue
		}
		switch {
		case coerceSet[i]:
			coerceRows = append(coerceRows, r.Cells)
		case colSet[i]:
			colRows = append(colRows, r.Cells)
		default:
			data = append(data, r.Cells)
		}
	}

	out := Interpretation{ColHeaders: zipHeaders(colRows)}

	// Split row-header columns out of the data block.
	if len(rowIdxs) > 0 {
		for i, row := range data {
			var hdr, rest []any
			for c, v := range row {
				if rowSet[c] {
					hdr = append(hdr, v)
				} else {
					rest = append(rest, v)
				}
			}
			out.RowHeaders = append(out.RowHeaders, flattenTuple(hdr))
			data[i] = rest
		}
	}
	out.Data = data

	// Coercion map keyed by column header, built before the corner headers
	// above row-header columns are dropped so positions still line up.
	if len(coerceRows) > 0 {
		out.Coercions = buildCoercions(out.ColHeaders, coerceRows[0])
	}
	if n := len(rowIdxs); n > 0 && len(out.ColHeaders) >= n {
		out.ColHeaders = out.ColHeaders[n:]
	}
	return out
}

func autoCoercionIdxs(table Table) IndexSet {
	for i := 0; i+1 < len(table); i++ {
		if table[i].IsDivider() || !table[i+1].IsDivider() {
			continue
		}
		for _, c := range table[i].Cells {
			if _, ok := asCoerce(c); ok {
				return IndexSet{i}
			}
		}
	}
	return IndexSet{}
}

func autoColHeaderIdxs(table Table, coerce map[int]bool) IndexSet {
	firstDiv := -1
	for i, r := range table {
		if r.IsDivider() {
			firstDiv = i
			break
		}
	}
	if firstDiv == -1 {
		if len(table) == 0 {
			return IndexSet{}
		}
		return IndexSet{0}
	}
	idxs := IndexSet{}
	for i := 0; i < firstDiv; i++ {
		if !coerce[i] {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func autoRowHeaderIdxs(table Table) IndexSet {
	idxs := IndexSet{}
	if len(table) == 0 || table[0].IsDivider() {
		return idxs
	}
	for _, c := range table[0].Cells {
		if c != nil {
			break
		}
		idxs = append(idxs, len(idxs))
	}
	return idxs
}

// zipHeaders transposes header rows into per-column tuples, flattening to the
// single value when the region is one row tall.
func zipHeaders(rows [][]any) []any {
	if len(rows) == 0 {
		return nil
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	headers := make([]any, width)
	for c := 0; c < width; c++ {
		tuple := make([]any, 0, len(rows))
		for _, r := range rows {
			if c < len(r) {
				tuple = append(tuple, r[c])
			} else {
				tuple = append(tuple, nil)
			}
		}
		headers[c] = flattenTuple(tuple)
	}
	return headers
}

// flattenTuple unwraps a 1-tuple to its single value.
func flattenTuple(tuple []any) any {
	if len(tuple) == 1 {
		return tuple[0]
	}
	return tuple
}

func buildCoercions(headers []any, coerceRow []any) map[any]CoerceFunc {
	m := make(map[any]CoerceFunc)
	for c, h := range headers {
		if h == nil || c >= len(coerceRow) {
			continue
		}
		if fn, ok := asCoerce(coerceRow[c]); ok {
			m[headerKey(h)] = fn
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// asCoerce accepts both the named CoerceFunc type and a bare func(any) any,
// since resolvers typically hand back the latter.
func asCoerce(v any) (CoerceFunc, bool) {
	switch f := v.(type) {
	case CoerceFunc:
		return f, true
	case func(any) any:
		return CoerceFunc(f), true
	}
	return nil, false
}

// headerKey maps a header value to a comparable map key. Tuple headers key
// by their printed form; scalar headers key by themselves.
func headerKey(h any) any {
	if tuple, ok := h.([]any); ok {
		return fmt.Sprintf("%v", tuple)
	}
	return h
}

func toSet(idxs IndexSet) map[int]bool {
	set := make(map[int]bool, len(idxs))
	for _, i := range idxs {
		set[i] = true
	}
	return set
}
