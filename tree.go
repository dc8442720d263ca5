package tablit

import "fmt"

// Tree is the nested result of a template walk: values are scalars, nested
// Trees, or []Tree collections.
type Tree map[Keyword]any

// frame is one level of walk focus: the descriptor whose row template governs
// continuation rows, plus (for repeating descriptors) the collection key and
// the index of the element currently being filled, -1 while the collection is
// still empty.
type frame struct {
	desc *descriptor
	key  Keyword
	idx  int
}

// walkState is the full state threaded through the row fold. The walker owns
// the in-progress tree exclusively; the finished tree is handed to the caller
// with no remaining references.
type walkState struct {
	tree   Tree
	frames []frame
}

// TableToTree parses the template table and builds a nested tree from the
// data table. Use [ParseTemplate] and [Template.Build] directly to reuse one
// parsed template across many data tables.
func TableToTree(template, data Table) (Tree, error) {
	tpl, err := ParseTemplate(template)
	if err != nil {
		return nil, err
	}
	return tpl.Build(data)
}

// Build walks the data table row by row against the parsed template. Rows
// matching a registered shape either contribute their fields (flat shapes) or
// open a named collection (repeating shapes); rows with no symbolic cells are
// continuation rows extracted under the innermost open shape; blank rows
// close the innermost level. A row carrying symbolic cells whose shape is
// unregistered is a match error.
func (tpl *Template) Build(data Table) (Tree, error) {
	st := walkState{tree: Tree{}}
	for _, row := range data {
		next, err := tpl.step(st, row)
		if err != nil {
			return nil, err
		}
		st = next
	}
	return st.tree, nil
}

func (tpl *Template) step(st walkState, row Row) (walkState, error) {
	switch {
	case row.IsDivider():
		return st, nil
	case row.IsBlank():
		if n := len(st.frames); n > 0 {
			st.frames = st.frames[:n-1]
		}
		return st, nil
	case hasSymbol(row.Cells):
		desc, ok := tpl.shapes[fingerprintOf(row.Cells)]
		if !ok {
			return st, fmt.Errorf("%w: %v", ErrTemplateMatch, row.Cells)
		}
		return st.open(desc, row.Cells), nil
	default:
		return st.continuation(row.Cells), nil
	}
}

// open handles a row matching a registered shape. Flat shapes carry their
// data in the matching row itself, extracted at the current focus; repeating
// shapes initialize an empty collection and shift focus into it.
func (st walkState) open(desc *descriptor, cells []any) walkState {
	focus := st.focus(len(st.frames))
	if desc.repeating {
		focus[desc.attr] = []Tree{}
		st.frames = appendFrame(st.frames, frame{desc: desc, key: desc.attr, idx: -1})
		return st
	}
	mergeFields(focus, desc.fields, cells)
	st.frames = appendFrame(st.frames, frame{desc: desc})
	return st
}

// continuation handles a row with no symbolic cells: one collection element
// under a repeating focus, or more fields at the current focus under a flat
// one. With nothing open, the row is skipped.
func (st walkState) continuation(cells []any) walkState {
	n := len(st.frames)
	if n == 0 {
		return st
	}
	top := st.frames[n-1]
	if !top.desc.repeating {
		mergeFields(st.focus(n), top.desc.fields, cells)
		return st
	}
	parent := st.focus(n - 1)
	elem := Tree{}
	mergeFields(elem, top.desc.fields, cells)
	arr, _ := parent[top.key].([]Tree)
	parent[top.key] = append(arr, elem)
	frames := appendFrame(st.frames[:n-1], frame{desc: top.desc, key: top.key, idx: len(arr)})
	st.frames = frames
	return st
}

// focus resolves the tree node addressed by the first n frames. Flat frames
// contribute no path segment; a repeating frame with no element yet stops the
// descent at its parent.
func (st walkState) focus(n int) Tree {
	cur := st.tree
	for _, f := range st.frames[:n] {
		if !f.desc.repeating || f.idx < 0 {
			continue
		}
		arr, ok := cur[f.key].([]Tree)
		if !ok || f.idx >= len(arr) {
			return cur
		}
		cur = arr[f.idx]
	}
	return cur
}

func mergeFields(dst Tree, fields rowTemplate, cells []any) {
	for k, idx := range fields {
		if idx < len(cells) {
			dst[k] = cells[idx]
		} else {
			dst[k] = nil
		}
	}
}

// appendFrame appends without sharing backing arrays between states.
func appendFrame(frames []frame, f frame) []frame {
	out := make([]frame, len(frames), len(frames)+1)
	copy(out, frames)
	return append(out, f)
}

// repeatMarker is the first-cell marker switching [ApplyTemplate] into
// collection mode.
var repeatMarker = Symbol("*")

// ApplyTemplate is the flat, single-pass variant of the template engine: no
// fingerprint matching and no nesting, just positional zipping of template
// rows against data rows. A template row whose first cell is "*" freezes the
// template cursor on the row that follows it; every remaining data row is
// processed against that fixed row and wrapped in a single-element []Tree,
// marking it for merge by a downstream tree-builder.
func ApplyTemplate(template, data Table) ([]any, error) {
	var out []any
	ti := 0
	for di := 0; di < len(data); di++ {
		if ti >= len(template) {
			return out, nil
		}
		tplRow := template[ti]
		if len(tplRow.Cells) > 0 && tplRow.Cells[0] == repeatMarker {
			fixed := ti + 1
			if fixed >= len(template) {
				return nil, fmt.Errorf("%w: repeat marker with no row template after it", ErrTemplateParse)
			}
			for ; di < len(data); di++ {
				out = append(out, []Tree{zipTemplateRow(template[fixed].Cells, data[di].Cells)})
			}
			return out, nil
		}
		out = append(out, zipTemplateRow(tplRow.Cells, data[di].Cells))
		ti++
	}
	return out, nil
}

func zipTemplateRow(tpl, cells []any) Tree {
	m := Tree{}
	for i, c := range tpl {
		k, ok := c.(Keyword)
		if !ok {
			continue
		}
		if i < len(cells) {
			m[k] = cells[i]
		} else {
			m[k] = nil
		}
	}
	return m
}
