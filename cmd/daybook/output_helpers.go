package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/amonks/daybook/internal/markdown"
)

const detailLineWidth = 80

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func renderMarkdownOrDash(value string, width, indent int) string {
	formatted := markdown.Render(width, indent, value)
	if strings.TrimSpace(formatted) == "" {
		return strings.Repeat(" ", indent) + "-"
	}
	return formatted
}

func highlighter(prefixLengths map[string]int, highlight func(string, int) string) func(string) string {
	return func(id string) string {
		if prefixLengths == nil {
			return highlight(id, 0)
		}
		return highlight(id, prefixLengths[strings.ToLower(id)])
	}
}
