package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON object of type T from raw model output. It
// tolerates markdown fences, prose around the object, comments, and
// numbers written as ".5". If validator is non-nil the value is checked
// before it is returned.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(dropFenceLines(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(sanitize(block)), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// CleanText trims a free-text completion and removes a wrapping code fence
// if the model added one.
func CleanText(raw string) string {
	return strings.TrimSpace(dropFenceLines(strings.TrimSpace(raw)))
}

// dropFenceLines removes markdown fence lines (``` or ```json) and keeps
// everything else.
func dropFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// jsonWalker tracks whether a byte offset sits inside a JSON string.
type jsonWalker struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is part of a string literal
// (including its quotes).
func (w *jsonWalker) step(c byte) bool {
	switch {
	case w.escaped:
		w.escaped = false
		return true
	case w.inString && c == '\\':
		w.escaped = true
		return true
	case c == '"':
		w.inString = !w.inString
		return true
	default:
		return w.inString
	}
}

// firstObject returns the first balanced { ... } block in s.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	var w jsonWalker
	depth := 0
	for i := start; i < len(s); i++ {
		if w.step(s[i]) {
			continue
		}
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// sanitize strips // and /* */ comments outside strings and rewrites ".8"
// or "-.3" into "0.8" and "-0.3".
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var w jsonWalker
	for i := 0; i < len(s); i++ {
		c := s[i]
		if w.step(c) {
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				break
			}
			i += end + 3
			continue
		}

		if c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(lastNonSpace(b.String())) {
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func lastNonSpace(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

func startsNumber(prev byte) bool {
	switch prev {
	case 0, ':', ',', '[', '{', '-':
		return true
	default:
		return false
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
