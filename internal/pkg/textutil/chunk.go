// Package textutil holds the text helpers shared by the services:
// order-preserving chunking and TF-IDF relevance ranking.
package textutil

import "strings"

// Chunk splits items into consecutive groups of size. The last group holds
// the remainder. It returns nil when items is empty or size <= 0.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end:end])
	}
	return out
}

// SplitWords splits text on whitespace and joins every size words with a
// single space.
func SplitWords(text string, size int) []string {
	groups := Chunk(strings.Fields(text), size)
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = strings.Join(g, " ")
	}
	return out
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
