// Package sniff identifies the format of an uploaded tabular file from a
// byte sample. Detection is heuristic and intentionally conservative: the
// file extension is never trusted, content wins.
package sniff

import (
	"bytes"
	"errors"
	"fmt"
)

// Format is the detected input file format.
type Format int

const (
	FormatUnknown Format = iota
	// FormatDelimited is CSV-like text with an arbitrary delimiter.
	FormatDelimited
	// FormatXLSX is an OOXML workbook (zip container).
	FormatXLSX
	// FormatHTML is an HTML document carrying a <table> export.
	FormatHTML
)

// ErrUnreadable marks inputs that cannot be parsed as a table at all. It is
// the only failure class surfaced to the caller; everything else degrades to
// the shape of the output.
var ErrUnreadable = errors.New("unreadable input")

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Detect infers the format from the first bytes of the file.
//
// Legacy OLE .xls workbooks are recognized but rejected: there is no
// maintained reader for them here, and an explicit immediate error beats a
// garbage parse.
func Detect(sample []byte) (Format, error) {
	if bytes.HasPrefix(sample, zipMagic) {
		return FormatXLSX, nil
	}
	if bytes.HasPrefix(sample, oleMagic) {
		return FormatUnknown, fmt.Errorf("%w: legacy .xls workbook; re-save it as .xlsx", ErrUnreadable)
	}
	trim := bytes.TrimSpace(stripBOM(sample))
	if len(trim) == 0 {
		return FormatUnknown, fmt.Errorf("%w: empty file", ErrUnreadable)
	}
	if trim[0] == '<' {
		return FormatHTML, nil
	}
	return FormatDelimited, nil
}

// Delimiter guesses the field delimiter of a delimited text sample by
// counting candidate occurrences in the first line. Comma wins ties.
func Delimiter(sample []byte) rune {
	line := stripBOM(sample)
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', bytes.Count(line, []byte{','})
	for _, c := range []byte{';', '\t', '|'} {
		if n := bytes.Count(line, []byte{c}); n > bestN {
			best, bestN = rune(c), n
		}
	}
	return best
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
