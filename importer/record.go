package importer

import "strings"

// Line is one non-comment entry of a list file. Fields holds the raw cells;
// text files yield a single field per line.
type Line struct {
	Number int
	Fields []string
}

func (l Line) skip() bool {
	first := ""
	for _, field := range l.Fields {
		if strings.TrimSpace(field) != "" {
			first = strings.TrimSpace(field)
			break
		}
	}
	return first == "" || strings.HasPrefix(first, "#")
}

func normalizeFormat(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.TrimPrefix(trimmed, ".")
	return trimmed
}
