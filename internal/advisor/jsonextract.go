package advisor

import (
	"encoding/json"
	"strings"
)

// completionEnvelope is what the advisory service returns when it proxies
// the raw model completion instead of its own advice object.
type completionEnvelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// adviceFromCompletion pulls the advice JSON out of the first completion
// choice. It returns "" when body is not such an envelope.
func adviceFromCompletion(body []byte) string {
	var env completionEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Choices) == 0 {
		return ""
	}
	return extractJSON(env.Choices[0].Message.Content)
}

// extractJSON finds the first balanced JSON object in a string and returns it.
// It strips common markdown fences first. Braces inside string literals are
// skipped.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, r := range []string{"```json", "```", "`json"} {
		s = strings.ReplaceAll(s, r, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
