package tablit_test

import (
	"testing"

	"github.com/bjaus/tablit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustTable lexes and tabularizes source, failing the test on any error.
func mustTable(t *testing.T, opts tablit.TabularizeOptions, src string) tablit.Table {
	t.Helper()
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{}, src)
	require.NoError(t, err)
	table, err := tablit.Tabularize(opts, tokens)
	require.NoError(t, err)
	return table
}

func kw(s string) tablit.Keyword { return tablit.Keyword(s) }
func sym(s string) tablit.Symbol { return tablit.Symbol(s) }

func TestTabularizeBasic(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :date        | :value |
		| ------------ | ------ |
		| "2021-07-01" | 10     |
		| "2021-07-02" | 20     |
	`)
	require.Len(t, table, 4)
	assert.Equal(t, []any{kw("date"), kw("value")}, table[0].Cells)
	assert.True(t, table[1].IsDivider())
	assert.Equal(t, []any{"2021-07-01", int64(10)}, table[2].Cells)
	assert.Equal(t, []any{"2021-07-02", int64(20)}, table[3].Cells)
}

func TestTabularizeUniformWidth(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  | :b  | :c  |
		| --- | --- | --- |
		| 1   | 2   | 3   |
		| 4   |     | 6   |
	`)
	for _, row := range table {
		if row.IsDivider() {
			continue
		}
		assert.Len(t, row.Cells, 3)
	}
	assert.Equal(t, 3, table.Width())
}

func TestTabularizeEmptyCellIsNil(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{Width: 2}, `
		| 1 |   |
	`)
	require.Len(t, table, 1)
	assert.Equal(t, []any{int64(1), nil}, table[0].Cells)
}

func TestTabularizeMultiValueCell(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{Width: 2}, `
		| 1 2 3 | "x" |
	`)
	require.Len(t, table, 1)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, table[0].Cells[0])
	assert.Equal(t, "x", table[0].Cells[1])
}

func TestTabularizeDividerCollapse(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  | :b  |
		| --- | --- |
	`)
	require.Len(t, table, 2)
	assert.False(t, table[0].IsDivider())
	assert.True(t, table[1].IsDivider())
	assert.Nil(t, table[1].Cells)
}

func TestTabularizePartialDashRowIsData(t *testing.T) {
	t.Parallel()
	// A row mixing dashes and data must not collapse.
	table := mustTable(t, tablit.TabularizeOptions{Width: 2}, `
		| --- | 1 |
	`)
	require.Len(t, table, 1)
	assert.False(t, table[0].IsDivider())
	assert.Equal(t, sym("---"), table[0].Cells[0])
}

func TestTabularizeWidthIgnoresDashDataCells(t *testing.T) {
	t.Parallel()
	// A dash cell at the end of a data row sits adjacent to the divider row in
	// the token stream; it must not inflate the detected width.
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  | :b  |
		| x   | --- |
		| --- | --- |
		| 1   | 2   |
	`)
	require.Len(t, table, 4)
	assert.Equal(t, 2, table.Width())
	assert.Equal(t, []any{sym("x"), sym("---")}, table[1].Cells)
	assert.True(t, table[2].IsDivider())
	assert.Equal(t, []any{int64(1), int64(2)}, table[3].Cells)
}

func TestTabularizeExplicitWidthOverride(t *testing.T) {
	t.Parallel()
	// Without a divider row the width cannot be detected; explicit width
	// segments the stream.
	table := mustTable(t, tablit.TabularizeOptions{Width: 2}, `
		| 1 | 2 |
		| 3 | 4 |
	`)
	require.Len(t, table, 2)
	assert.Equal(t, []any{int64(3), int64(4)}, table[1].Cells)
}

func TestTabularizeCustomDividerPattern(t *testing.T) {
	t.Parallel()
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{}, `
		| :a | :b |
		| == | == |
	`)
	require.NoError(t, err)
	table, err := tablit.Tabularize(tablit.TabularizeOptions{Divider: `^={2,}$`}, tokens)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.True(t, table[1].IsDivider())
}

func TestTabularizeNoWidthError(t *testing.T) {
	t.Parallel()
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{}, `| 1 | 2 |`)
	require.NoError(t, err)
	_, err = tablit.Tabularize(tablit.TabularizeOptions{}, tokens)
	assert.ErrorIs(t, err, tablit.ErrStructural)
}

func TestTabularizeMisalignedStreamError(t *testing.T) {
	t.Parallel()
	// Stream ends mid-row: three cells declared, two closed.
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{}, `| 1 | 2 |`)
	require.NoError(t, err)
	_, err = tablit.Tabularize(tablit.TabularizeOptions{Width: 3}, tokens)
	assert.ErrorIs(t, err, tablit.ErrStructural)
}

func TestTabularizeLeadingTokenNotSeparatorError(t *testing.T) {
	t.Parallel()
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{}, `1 | 2 |`)
	require.NoError(t, err)
	_, err = tablit.Tabularize(tablit.TabularizeOptions{Width: 1}, tokens)
	assert.ErrorIs(t, err, tablit.ErrStructural)
}

func TestTabularizeBadDividerPatternError(t *testing.T) {
	t.Parallel()
	_, err := tablit.Tabularize(tablit.TabularizeOptions{Divider: `(`}, nil)
	assert.ErrorIs(t, err, tablit.ErrStructural)
}
