// Package markup prepares generated text for Telegram MarkdownV2 delivery.
// This package includes reusable functions for stripping internal debug
// markers, softening markdown headers, and escaping the MarkdownV2 reserved
// character set so the destination renderer does not reject the message.
package markup

import "strings"

// reserved is the MarkdownV2 control character set. Telegram rejects
// messages containing any of these unescaped.
const reserved = "_*[]()~`>#+-=|{}.!"

// headerGlyph replaces markdown header prefixes. Headers render as plain
// text in Telegram, so a leading glyph reads better than a row of hashes.
const headerGlyph = "• "

// debugDelimiters are internal markers the generation layer wraps around
// prompts and replies in logs. They occasionally leak into model output
// and must never reach subscribers.
var debugDelimiters = []string{
	"---PROMPT START---",
	"---PROMPT END---",
	"---REPLY START---",
	"---REPLY END---",
}

// Sanitize prepares raw generated text for a MarkdownV2 send.
// It strips debug delimiters, softens markdown headers into a leading
// glyph, and escapes every reserved character with a single backslash.
// Pre-existing escapes are normalized away first, so applying Sanitize
// to already sanitized text never double-escapes.
func Sanitize(raw string) string {
	text := unescape(Strip(raw))
	return strings.TrimSpace(escape(text))
}

// Strip cleans generated text without escaping: debug delimiters removed,
// headers softened, surrounding whitespace trimmed. This is the form used
// for a plain-text send where escape backslashes would be visible.
func Strip(raw string) string {
	text := stripDebugDelimiters(raw)
	text = softenHeaders(text)
	return strings.TrimSpace(text)
}

func stripDebugDelimiters(text string) string {
	for _, d := range debugDelimiters {
		text = strings.ReplaceAll(text, d, "")
	}
	return text
}

// softenHeaders rewrites lines starting with markdown header syntax
// ("# ", "## ", ...) to start with headerGlyph instead. Hashtags
// (no space after the hash) are left untouched.
func softenHeaders(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "#")
		hashes := len(line) - len(trimmed)
		if hashes == 0 || !strings.HasPrefix(trimmed, " ") {
			continue
		}
		lines[i] = headerGlyph + strings.TrimLeft(trimmed, " ")
	}
	return strings.Join(lines, "\n")
}

// unescape drops backslashes that precede a reserved character, returning
// the text to its unescaped form so escape can apply a single clean pass.
func unescape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && strings.IndexByte(reserved, text[i+1]) >= 0 {
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// escape prefixes every reserved character with one backslash.
func escape(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(reserved, text[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}
