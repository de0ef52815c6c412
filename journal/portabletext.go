package journal

import (
	"slices"
	"strings"
)

// Block is a portable-text block. Only text blocks are rendered; other
// block types are skipped.
type Block struct {
	Type     string `json:"_type"`
	Style    string `json:"style,omitempty"`
	ListItem string `json:"listItem,omitempty"`
	Level    int    `json:"level,omitempty"`
	Children []Span `json:"children,omitempty"`
}

// Span is a run of text with decorator marks.
type Span struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

var headingPrefix = map[string]string{
	"h1": "# ",
	"h2": "## ",
	"h3": "### ",
	"h4": "#### ",
	"h5": "##### ",
	"h6": "###### ",
}

// Markdown flattens blocks into markdown text.
func Markdown(blocks []Block) string {
	var paragraphs []string
	var list []string
	flush := func() {
		if len(list) > 0 {
			paragraphs = append(paragraphs, strings.Join(list, "\n"))
			list = nil
		}
	}

	for _, block := range blocks {
		if block.Type != "block" {
			continue
		}
		text := spansText(block.Children)
		if block.ListItem != "" {
			indent := strings.Repeat("  ", max(block.Level-1, 0))
			marker := "- "
			if block.ListItem == "number" {
				marker = "1. "
			}
			list = append(list, indent+marker+text)
			continue
		}
		flush()
		if strings.TrimSpace(text) == "" {
			continue
		}
		switch {
		case headingPrefix[block.Style] != "":
			text = headingPrefix[block.Style] + text
		case block.Style == "blockquote":
			text = "> " + text
		}
		paragraphs = append(paragraphs, text)
	}
	flush()
	return strings.Join(paragraphs, "\n\n")
}

func spansText(spans []Span) string {
	var b strings.Builder
	for _, span := range spans {
		text := span.Text
		if text == "" {
			continue
		}
		if slices.Contains(span.Marks, "code") {
			text = "`" + text + "`"
		}
		if slices.Contains(span.Marks, "em") {
			text = "_" + text + "_"
		}
		if slices.Contains(span.Marks, "strong") {
			text = "**" + text + "**"
		}
		b.WriteString(text)
	}
	return b.String()
}
