package script

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr substitutes every ${env.KEY} occurrence with the value of
// the KEY environment variable, empty when unset.  Scripts use this to keep
// host specific paths (cache dirs, credentials) out of version control.
func expandEnvExpr(text string) string {
	const marker = "${env."
	if !strings.Contains(text, marker) {
		return text
	}
	var b strings.Builder
	for {
		idx := strings.Index(text, marker)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		rest := text[idx+len(marker):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			// unterminated expression, keep it literal
			b.WriteString(text[idx:])
			break
		}
		key := rest[:end]
		if isEnvKey(key) {
			b.WriteString(os.Getenv(key))
			text = rest[end+1:]
			continue
		}
		// not a key, emit the marker and rescan what follows it
		b.WriteString(marker)
		text = rest
	}
	return b.String()
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
