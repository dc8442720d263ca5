package tablit_test

import (
	"testing"

	"github.com/bjaus/tablit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretAutoDefaults(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :date        | :value |
		| ------------ | ------ |
		| "2021-07-01" | 10     |
		| "2021-07-02" | 20     |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	assert.Equal(t, []any{kw("date"), kw("value")}, in.ColHeaders)
	assert.Nil(t, in.RowHeaders)
	assert.Nil(t, in.Coercions)
	assert.Equal(t, [][]any{
		{"2021-07-01", int64(10)},
		{"2021-07-02", int64(20)},
	}, in.Data)
}

func TestInterpretNoDividerFirstRowIsHeader(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{Width: 2}, `
		| :a | :b |
		| 1  | 2  |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	assert.Equal(t, []any{kw("a"), kw("b")}, in.ColHeaders)
	assert.Equal(t, [][]any{{int64(1), int64(2)}}, in.Data)
}

func TestInterpretAutoRowHeaders(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		|      |      | :colA | :colB |
		| ---- | ---- | ----- | ----- |
		| "r1" | "x1" | 1     | 2     |
		| "r2" | "x2" | 3     | 4     |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	assert.Equal(t, []any{kw("colA"), kw("colB")}, in.ColHeaders)
	require.Len(t, in.RowHeaders, 2)
	assert.Equal(t, []any{"r1", "x1"}, in.RowHeaders[0])
	assert.Equal(t, []any{"r2", "x2"}, in.RowHeaders[1])
	assert.Equal(t, [][]any{{int64(1), int64(2)}, {int64(3), int64(4)}}, in.Data)
}

func TestInterpretSingleRowHeaderFlattens(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		|      | :v  |
		| ---- | --- |
		| "r1" | 1   |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	// One row-header column flattens from 1-tuple to the value itself.
	assert.Equal(t, []any{"r1"}, in.RowHeaders)
	assert.Equal(t, []any{kw("v")}, in.ColHeaders)
}

func TestInterpretMultiRowHeadersZipToTuples(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :q1   | :q2   |
		| :east | :west |
		| ----- | ----- |
		| 1     | 2     |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	require.Len(t, in.ColHeaders, 2)
	assert.Equal(t, []any{kw("q1"), kw("east")}, in.ColHeaders[0])
	assert.Equal(t, []any{kw("q2"), kw("west")}, in.ColHeaders[1])
}

func TestInterpretCoercionRowAutoDetect(t *testing.T) {
	t.Parallel()
	double := func(v any) any { return v.(int64) * 2 }
	tokens, err := tablit.Tokenize(tablit.TokenizeOptions{
		Resolve: func(name string) (any, bool) {
			if name == "double" {
				return tablit.CoerceFunc(double), true
			}
			return nil, false
		},
	}, `
		| :a  | :b     |
		| nil | double |
		| --- | ------ |
		| 1   | 2      |
	`)
	require.NoError(t, err)
	table, err := tablit.Tabularize(tablit.TabularizeOptions{}, tokens)
	require.NoError(t, err)

	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	assert.Equal(t, []any{kw("a"), kw("b")}, in.ColHeaders)
	require.Contains(t, in.Coercions, kw("b"))
	assert.NotContains(t, in.Coercions, kw("a"))
	// The coercion row is not data.
	assert.Equal(t, [][]any{{int64(1), int64(2)}}, in.Data)
}

func TestInterpretExplicitEmptySetMeansNone(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  | :b  |
		| --- | --- |
		| 1   | 2   |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{ColHeaderIdxs: tablit.Indices()}, table)
	assert.Nil(t, in.ColHeaders)
	// The would-be header row stays in the data block.
	assert.Equal(t, [][]any{{kw("a"), kw("b")}, {int64(1), int64(2)}}, in.Data)
}

func TestInterpretExplicitOutOfRangeIndicesDegrade(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  | :b  |
		| --- | --- |
		| 1   | 2   |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{ColHeaderIdxs: tablit.Indices(41)}, table)
	assert.Nil(t, in.ColHeaders)
	require.Len(t, in.Data, 2)
}

func TestInterpretDataHasNoDividers(t *testing.T) {
	t.Parallel()
	table := mustTable(t, tablit.TabularizeOptions{}, `
		| :a  |
		| --- |
		| 1   |
		| --- |
		| 2   |
	`)
	in := tablit.Interpret(tablit.InterpretOptions{}, table)
	assert.Equal(t, [][]any{{int64(1)}, {int64(2)}}, in.Data)
}
