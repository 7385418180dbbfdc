package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRE = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseModelJSON parses the model's response into an object. On a strict
// parse failure it applies a bounded set of repairs and retries once.
func parseModelJSON(raw string) (map[string]any, error) {
	text := stripFences(raw)

	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err == nil {
		return m, nil
	}

	repaired := balanceBraces(trimToJSON(text))
	if err := json.Unmarshal([]byte(repaired), &m); err != nil {
		return nil, fmt.Errorf("parse model json: %w", err)
	}
	return m, nil
}

func stripFences(s string) string {
	if match := fenceRE.FindStringSubmatch(s); match != nil {
		return match[1]
	}
	return strings.TrimSpace(s)
}

// trimToJSON drops any leading prose before the first '{', and trailing
// prose after the last '}' when that brace closes the outermost object;
// otherwise the tail is kept so balanceBraces can close it.
func trimToJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	end := strings.LastIndexByte(s, '}')
	if end < start || balanceBraces(s[start:end+1]) != s[start:end+1] {
		return s[start:]
	}
	return s[start : end+1]
}

// balanceBraces appends missing closing braces/brackets once. Counting
// ignores characters inside string literals.
func balanceBraces(s string) string {
	var braces, brackets int
	inString := false
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braces++
			}
		case '}':
			if !inString {
				braces--
			}
		case '[':
			if !inString {
				brackets++
			}
		case ']':
			if !inString {
				brackets--
			}
		}
	}
	out := s
	for i := 0; i < brackets; i++ {
		out += "]"
	}
	for i := 0; i < braces; i++ {
		out += "}"
	}
	return out
}

// sanitize drops nulls, empty strings, and unknown keys so the document
// can validate against the strict schema. It only removes; it never
// invents values.
func sanitize(m map[string]any) (map[string]any, []string) {
	allowed := map[string]struct{}{
		"vendor_name": {}, "date": {}, "total": {}, "subtotal": {}, "tax": {},
		"tax_rate": {}, "currency": {}, "category": {}, "payment_method": {},
		"receipt_number": {}, "line_items": {},
	}
	var dropped []string
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, ok := allowed[k]; !ok {
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			dropped = append(dropped, k+"(null)")
		case string:
			if strings.TrimSpace(t) == "" || strings.EqualFold(t, "null") {
				dropped = append(dropped, k+"(empty)")
				continue
			}
			out[k] = t
		default:
			out[k] = v
		}
	}
	return out, dropped
}
