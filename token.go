package tablit

import "regexp"

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenString TokenKind = iota
	TokenNumber
	TokenBool
	TokenNil
	TokenKeyword
	TokenSymbol
	TokenSeparator
)

// Token is one atomic unit of literal-table source: a scalar literal, a
// keyword (an output key), a symbol (an opaque, unevaluated name), or the
// cell-boundary separator. Tokens are produced once by [Tokenize] and never
// mutated.
type Token struct {
	Kind  TokenKind
	Value any    // scalar value; Keyword or Symbol for named tokens
	Name  string // source text for keywords and symbols
}

// Keyword is a named output key (written ":name" in table source). Keywords
// name columns, template fields, and collection attributes.
type Keyword string

// Symbol is an unresolved symbolic reference. The pipeline never evaluates
// symbols; they are identity values used for template fingerprinting and as
// row markers.
type Symbol string

// DefaultDividerPattern matches the textual name of a divider cell: a run of
// three or more dashes.
const DefaultDividerPattern = `^-{3,}$`

var defaultDividerRE = regexp.MustCompile(DefaultDividerPattern)

// dividerLike reports whether a single cell value is a divider marker under
// the given pattern. Only symbols qualify; divider recognition is structural,
// not textual scanning of arbitrary strings.
func dividerLike(cell any, re *regexp.Regexp) bool {
	s, ok := cell.(Symbol)
	return ok && re.MatchString(string(s))
}

// cellValue converts a non-separator token to the value it contributes to a
// cell.
func (t Token) cellValue() any {
	switch t.Kind {
	case TokenKeyword:
		return Keyword(t.Name)
	case TokenSymbol:
		return Symbol(t.Name)
	default:
		return t.Value
	}
}

// Row is one table row. A row is either a divider sentinel (Divider set,
// Cells nil) or an ordered sequence of cells, where a cell is nil, a single
// value, or a []any of values when multiple tokens share a cell.
type Row struct {
	Cells   []any
	Divider bool
}

// DividerLine is the sentinel row substituted for a row whose every cell is
// divider-like. Downstream code tests rows with [Row.IsDivider], never for a
// row of dash symbols.
var DividerLine = Row{Divider: true}

// IsDivider reports whether the row is the divider sentinel.
func (r Row) IsDivider() bool { return r.Divider }

// IsBlank reports whether every cell of a non-divider row is nil.
func (r Row) IsBlank() bool {
	if r.Divider {
		return false
	}
	for _, c := range r.Cells {
		if c != nil {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows. Between [Tabularize] and [Interpret]
// a table may contain divider sentinel rows; every non-divider row has the
// same cell count.
type Table []Row

// Width returns the cell count of the first non-divider row, or 0 for a
// table with no data rows.
func (t Table) Width() int {
	for _, r := range t {
		if !r.Divider {
			return len(r.Cells)
		}
	}
	return 0
}
