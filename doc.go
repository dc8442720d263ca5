// Package tablit turns pipe-delimited literal tables into structured data
// (flat records, relations, or nested trees) and runs the process in reverse
// to reconstruct table source from records. It exists so fixtures and
// configuration tables can be authored inline as compact, readable text.
//
// # Pipeline
//
// The stages compose left to right, each a pure function:
//
//	Tokenize → Tabularize → Interpret → Transform             (flat / relational)
//	Tokenize → Tabularize (template and data) → TableToTree   (nested trees)
//
// Stage by stage:
//
//   - [Tokenize] lexes table source into tokens: scalars, ":keyword" output
//     keys, opaque symbols, and "|" separators.
//   - [Tabularize] segments the token stream into rows of uniform width,
//     collapsing all-dash rows to the [DividerLine] sentinel.
//   - [Interpret] slices a table into column headers, row headers, a coercion
//     row, and the data block, using explicit indices or structural
//     auto-detection (divider adjacency, leading blank cells).
//   - [Transform] post-processes (blank-row removal, coercions, renames,
//     namespacing) and projects into one of the [Format] shapes.
//   - [ParseTemplate] and [Template.Build] (or the [TableToTree] convenience)
//     match data rows against template row shapes to build an arbitrarily
//     nested [Tree]; [ApplyTemplate] is the flat single-pass variant.
//   - [Serialize] renders uniform records back to aligned table source that
//     re-parses to the same data.
//
// # Auto-detection
//
// With zero-valued [InterpretOptions], the rows before the first divider are
// column headers, the count of leading nil cells in the first row gives the
// row-header columns, and a header row immediately preceding a divider whose
// cells include a coercion function becomes the coercion row:
//
//	| :date        | :value |
//	| ------------ | ------ |
//	| "2021-07-01" | 10     |
//	| "2021-07-02" | 20     |
//
// # Templates
//
// A template table registers row shapes by the positions of their symbolic
// cells. A shape row with keyword cells maps columns to output keys; a shape
// row without keywords introduces a named collection, filled by the following
// data rows and closed by a blank row. Parsed templates are immutable and may
// be shared across concurrent Build calls.
//
// # Symbols
//
// The pipeline never evaluates symbols. Resolution against a host
// environment is an injected capability on [TokenizeOptions]; unresolved
// symbols remain opaque identity values used only for fingerprinting.
//
// # Errors
//
// Fatal conditions return sentinel-wrapped errors carrying the offending row:
//
//   - [ErrStructural] — separators do not partition into width+1 groups
//   - [ErrTemplateParse] — a template row matches no shape pattern
//   - [ErrTemplateMatch] — a symbolic data row matches no registered shape
//   - [ErrUnsupportedFormat] — unknown format string
//
// Header and coercion index options never fail: unmatched indices degrade to
// empty slices, since they are author-controlled constants.
package tablit
