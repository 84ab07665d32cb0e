package notion

import (
	"fmt"
	"strings"

	"github.com/azis14/second-brain/internal/entity"
)

// ExtractBlockContent converts a Notion block into a normalized text
// representation. Unknown block types yield an empty string and are dropped
// by the caller.
func ExtractBlockContent(block entity.Block) string {
	text := joinRichText(block.Payload.RichText)

	switch block.Type {
	case "paragraph", "toggle", "callout":
		return text
	case "heading_1":
		return prefixed("# ", text)
	case "heading_2":
		return prefixed("## ", text)
	case "heading_3":
		return prefixed("### ", text)
	case "bulleted_list_item", "numbered_list_item":
		return prefixed("- ", text)
	case "to_do":
		if text == "" {
			return ""
		}
		if block.Payload.Checked != nil && *block.Payload.Checked {
			return "[x] " + text
		}
		return "[ ] " + text
	case "quote":
		return prefixed("> ", text)
	case "code":
		if text == "" {
			return ""
		}
		return fmt.Sprintf("```%s\n%s\n```", block.Payload.Language, text)
	case "divider":
		return "---"
	default:
		return ""
	}
}

// ExtractPageContent extracts every block into text, dropping blocks with
// no textual representation.
func ExtractPageContent(blocks []entity.Block) []string {
	content := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if text := ExtractBlockContent(block); text != "" {
			content = append(content, text)
		}
	}
	return content
}

// Extractor adapts the extraction helpers to the sync orchestrator's
// ContentExtractor interface.
type Extractor struct{}

func (Extractor) ExtractPageContent(blocks []entity.Block) []string {
	return ExtractPageContent(blocks)
}

func joinRichText(parts []entity.RichText) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.PlainText)
	}
	return strings.TrimSpace(sb.String())
}

func prefixed(prefix, text string) string {
	if text == "" {
		return ""
	}
	return prefix + text
}
