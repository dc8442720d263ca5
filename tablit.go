package tablit

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrStructural        = errors.New("malformed table structure")
	ErrTemplateParse     = errors.New("invalid template row")
	ErrTemplateMatch     = errors.New("no template shape matches row")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Format selects the output shape of [Transform].
type Format string

const (
	// FormatDefault merges whichever of col/row headers are non-empty with
	// the data block into one map.
	FormatDefault Format = ""
	// FormatMap passes {col_headers, data} through unprojected.
	FormatMap Format = "map"
	// FormatMaps yields one header-keyed map per data row.
	FormatMaps Format = "maps"
	// FormatTable yields the data rows with the header row prepended.
	FormatTable Format = "table"
	// FormatRelation is FormatMaps collapsed into a set: structurally
	// identical rows, nil cells included, collapse to one element.
	FormatRelation Format = "relation"
	// FormatCells yields one {col header, row header, value} triple per data
	// cell in row-major order.
	FormatCells Format = "cells"
)

var formats = []Format{FormatMap, FormatMaps, FormatTable, FormatRelation, FormatCells}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all named formats. FormatDefault is not included because it
// is selected by omission, not by name.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string. The empty string selects
// [FormatDefault].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatDefault, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}
