// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character counting used by
// the summary quality checks.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Cyrillic,
// Japanese, emoji, and other Unicode characters by counting runes instead of bytes.
//
// Summaries often mix scripts, so length floors must count characters the
// way a reader would, not bytes.
//
// Examples:
//
//	CountRunes("hello")          // returns 5 (ASCII text)
//	CountRunes("новости")        // returns 7 (Cyrillic text)
//	CountRunes("Hello👋")         // returns 6 (text with emoji)
//	CountRunes("")               // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}
