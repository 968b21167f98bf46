// Package grapheme provides grapheme-cluster helpers for block text.
//
// Block caret offsets are measured in grapheme clusters so that editing
// never lands inside a combining sequence or an emoji ZWJ run.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Clamp clamps a caret offset into [0, Count(text)].
func Clamp(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if n := Count(text); offset > n {
		return n
	}
	return offset
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	return sb.String()
}

// CutAt splits text at a grapheme offset into a left and right part.
// The offset is clamped into the valid range first.
func CutAt(text string, offset int) (left, right string) {
	offset = Clamp(text, offset)
	if offset == 0 {
		return "", text
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	byteAt := len(text)
	for g.Next() {
		if idx == offset {
			from, _ := g.Positions()
			byteAt = from
			break
		}
		idx++
	}
	return text[:byteAt], text[byteAt:]
}

// Width returns the terminal cell width of text.
func Width(text string) int {
	return runewidth.StringWidth(text)
}
