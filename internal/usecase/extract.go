package usecase

import "strings"

// The generation service is asked for strict JSON but sometimes wraps it in
// code fences or surrounding prose. These helpers carve the JSON payload out
// of whatever came back.

func stripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func extractJSONArray(text string) string {
	cleaned := stripCodeFences(text)
	first := strings.Index(cleaned, "[")
	last := strings.LastIndex(cleaned, "]")
	if first != -1 && last != -1 && last > first {
		return cleaned[first : last+1]
	}
	return "[]"
}

func extractJSONObject(text string) string {
	cleaned := stripCodeFences(text)
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first != -1 && last != -1 && last > first {
		return cleaned[first : last+1]
	}
	return "{}"
}

const maxReasonLength = 160

func shortenReason(text string) string {
	if text == "" {
		return "A popular pick from our actual menu."
	}
	squeezed := strings.Join(strings.Fields(text), " ")
	if len(squeezed) > maxReasonLength {
		return squeezed[:maxReasonLength-3] + "..."
	}
	return squeezed
}
