package tablit

import "fmt"

// fingerprint identifies a row shape: the positions and identities of its
// symbolic cells, everything else nulled.
type fingerprint string

// fingerprintOf computes the shape key of a row. Rows without symbolic cells
// fingerprint to the empty string.
func fingerprintOf(cells []any) fingerprint {
	var fp string
	for i, c := range cells {
		if s, ok := c.(Symbol); ok {
			fp += fmt.Sprintf("%d:%s;", i, s)
		}
	}
	return fingerprint(fp)
}

func hasSymbol(cells []any) bool {
	for _, c := range cells {
		if _, ok := c.(Symbol); ok {
			return true
		}
	}
	return false
}

// rowTemplate maps output keys to the column index their value is extracted
// from.
type rowTemplate map[Keyword]int

func rowTemplateOf(cells []any) rowTemplate {
	rt := make(rowTemplate)
	for i, c := range cells {
		if k, ok := c.(Keyword); ok {
			rt[k] = i
		}
	}
	return rt
}

// descriptor is the extraction rule registered for one row shape: either a
// flat field mapping, or a repeating rule introducing a named collection
// whose elements are built from subsequent rows.
type descriptor struct {
	repeating bool
	attr      Keyword
	fields    rowTemplate
}

// Template is a parsed template table: an immutable fingerprint-to-descriptor
// lookup, safe to share across concurrent [Template.Build] calls.
type Template struct {
	shapes map[fingerprint]*descriptor
}

// ParseTemplate parses a template table into shape descriptors. A row with
// symbolic and keyword cells registers a flat descriptor. A row with symbolic
// cells and no keywords declares a repeating block and consumes the next two
// rows as the collection-name row and the field-name row; the block registers
// under the fingerprint of its first row. Blank rows are skipped; anything
// else fails.
//
// Two template rows with an identical symbolic layout shadow one another
// (last one wins); the template author is responsible for keeping
// fingerprints unique.
func ParseTemplate(table Table) (*Template, error) {
	tpl := &Template{shapes: make(map[fingerprint]*descriptor)}
	for i := 0; i < len(table); i++ {
		row := table[i]
		if row.IsDivider() || row.IsBlank() {
			continue
		}
		fields := rowTemplateOf(row.Cells)
		switch {
		case !hasSymbol(row.Cells):
			return nil, fmt.Errorf("%w: no symbolic cell in %v", ErrTemplateParse, row.Cells)
		case len(fields) > 0:
			tpl.shapes[fingerprintOf(row.Cells)] = &descriptor{fields: fields}
		default:
			if i+2 >= len(table) {
				return nil, fmt.Errorf("%w: repeating block at row %d is missing its name and field rows", ErrTemplateParse, i)
			}
			attr, ok := firstKeyword(table[i+1].Cells)
			if !ok {
				return nil, fmt.Errorf("%w: no collection name in %v", ErrTemplateParse, table[i+1].Cells)
			}
			tpl.shapes[fingerprintOf(row.Cells)] = &descriptor{
				repeating: true,
				attr:      attr,
				fields:    rowTemplateOf(table[i+2].Cells),
			}
			i += 2
		}
	}
	return tpl, nil
}

func firstKeyword(cells []any) (Keyword, bool) {
	for _, c := range cells {
		if k, ok := c.(Keyword); ok {
			return k, true
		}
	}
	return "", false
}
