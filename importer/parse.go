package importer

import "strings"

var resourceSeparators = []string{"\t", " ", ",", ":", "|", ";"}

// parseResourceLine normalises "pool<sep>ip" to "pool ip". The first separator
// that splits the line into at least two non-empty parts wins; extra parts are
// dropped. A line no separator can split is kept whole.
func parseResourceLine(line string) string {
	line = strings.TrimSpace(line)
	for _, sep := range resourceSeparators {
		if !strings.Contains(line, sep) {
			continue
		}
		parts := nonEmpty(strings.Split(line, sep))
		if len(parts) >= 2 {
			return parts[0] + " " + parts[1]
		}
	}
	return line
}

// resourceFromFields joins the first two non-empty cells of a tabular row.
// A row with a single cell goes through the text separator rules.
func resourceFromFields(fields []string) string {
	parts := nonEmpty(fields)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parseResourceLine(parts[0])
	default:
		return parts[0] + " " + parts[1]
	}
}

func accountFromFields(fields []string) string {
	parts := nonEmpty(fields)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
