package events

import "strings"

// NormalizeDate coerces a date-like string into canonical YYYY-MM-DD form.
// Timestamps are truncated to their date portion, dashed dates pass through,
// and slash dates are read as day/month/year and zero-padded. Anything else
// passes through unchanged; normalization is a storage convenience, not a
// validator.
func NormalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return trimmed
	}
	if idx := strings.Index(trimmed, "T"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if strings.Contains(trimmed, "-") {
		return trimmed
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return trimmed
	}
	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])
	if day == "" || month == "" || year == "" {
		return trimmed
	}
	return pad(year, 4) + "-" + pad(month, 2) + "-" + pad(day, 2)
}

func pad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
