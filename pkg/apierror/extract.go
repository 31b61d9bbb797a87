package apierror

import "strings"

// FallbackMessage is shown when a body carries nothing a user can read.
const FallbackMessage = "Could not complete the requested action."

// Extract returns the single user-facing message for a payload.
// It is total: any input, including nil, yields a non-empty string.
func Extract(p Payload) string {
	switch v := p.(type) {
	case StringDetail:
		return orFallback(v.Text)
	case ArrayDetail:
		return first(v.Items)
	case NonFieldErrors:
		return first(v.Items)
	case FieldErrors:
		if len(v.Fields) == 0 {
			return FallbackMessage
		}
		return first(v.Fields[0].Messages)
	default:
		return FallbackMessage
	}
}

// ExtractJSON is Extract(Parse(body)).
func ExtractJSON(body []byte) string {
	return Extract(Parse(body))
}

func first(items []string) string {
	if len(items) == 0 {
		return FallbackMessage
	}
	return orFallback(items[0])
}

func orFallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return FallbackMessage
	}
	return s
}
