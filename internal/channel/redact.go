package channel

import "regexp"

// Redaction patterns for token-like substrings that commonly leak into
// delivery error text: bearer credentials, key/secret assignments, URL
// userinfo, and secret-bearing query parameters. Heuristic only, not a
// security guarantee.
var redactPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)(authorization\s*[:=]\s*bearer\s+)[^\s]+`), "$1[REDACTED]"},
	{regexp.MustCompile(`(?i)((?:token|secret|password|api[_-]?key)\s*[:=]\s*)[^\s,;]+`), "$1[REDACTED]"},
	{regexp.MustCompile(`(?i)(https?://[^/\s:@]+:)[^@\s/]+@`), "$1[REDACTED]@"},
	{regexp.MustCompile(`(?i)([?&](?:token|key|secret|sig)=)[^&\s]+`), "$1[REDACTED]"},
}

// Redact masks recognizable secret-bearing substrings in delivery error text
// before it reaches the terminal.
func Redact(s string) string {
	for _, p := range redactPatterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}
