package notion_test

import (
	"encoding/json"
	"testing"

	"github.com/azis14/second-brain/internal/entity"
	"github.com/azis14/second-brain/internal/integration/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func richText(parts ...string) []entity.RichText {
	rt := make([]entity.RichText, 0, len(parts))
	for _, p := range parts {
		rt = append(rt, entity.RichText{PlainText: p})
	}
	return rt
}

func TestExtractBlockContent(t *testing.T) {
	tests := []struct {
		name  string
		block entity.Block
		want  string
	}{
		{
			name:  "paragraph",
			block: entity.Block{Type: "paragraph", Payload: entity.BlockPayload{RichText: richText("Hello ", "world")}},
			want:  "Hello world",
		},
		{
			name:  "heading 1",
			block: entity.Block{Type: "heading_1", Payload: entity.BlockPayload{RichText: richText("Title")}},
			want:  "# Title",
		},
		{
			name:  "heading 2",
			block: entity.Block{Type: "heading_2", Payload: entity.BlockPayload{RichText: richText("Section")}},
			want:  "## Section",
		},
		{
			name:  "heading 3",
			block: entity.Block{Type: "heading_3", Payload: entity.BlockPayload{RichText: richText("Subsection")}},
			want:  "### Subsection",
		},
		{
			name:  "bulleted list item",
			block: entity.Block{Type: "bulleted_list_item", Payload: entity.BlockPayload{RichText: richText("first")}},
			want:  "- first",
		},
		{
			name:  "numbered list item",
			block: entity.Block{Type: "numbered_list_item", Payload: entity.BlockPayload{RichText: richText("second")}},
			want:  "- second",
		},
		{
			name:  "unchecked todo",
			block: entity.Block{Type: "to_do", Payload: entity.BlockPayload{RichText: richText("buy milk"), Checked: boolPtr(false)}},
			want:  "[ ] buy milk",
		},
		{
			name:  "checked todo",
			block: entity.Block{Type: "to_do", Payload: entity.BlockPayload{RichText: richText("buy milk"), Checked: boolPtr(true)}},
			want:  "[x] buy milk",
		},
		{
			name:  "toggle",
			block: entity.Block{Type: "toggle", Payload: entity.BlockPayload{RichText: richText("details")}},
			want:  "details",
		},
		{
			name:  "quote",
			block: entity.Block{Type: "quote", Payload: entity.BlockPayload{RichText: richText("wise words")}},
			want:  "> wise words",
		},
		{
			name:  "callout",
			block: entity.Block{Type: "callout", Payload: entity.BlockPayload{RichText: richText("note this")}},
			want:  "note this",
		},
		{
			name:  "code with language",
			block: entity.Block{Type: "code", Payload: entity.BlockPayload{RichText: richText("fmt.Println(42)"), Language: "go"}},
			want:  "```go\nfmt.Println(42)\n```",
		},
		{
			name:  "divider",
			block: entity.Block{Type: "divider"},
			want:  "---",
		},
		{
			name:  "unsupported type",
			block: entity.Block{Type: "image"},
			want:  "",
		},
		{
			name:  "empty heading",
			block: entity.Block{Type: "heading_1"},
			want:  "",
		},
		{
			name:  "whitespace only paragraph",
			block: entity.Block{Type: "paragraph", Payload: entity.BlockPayload{RichText: richText("   ")}},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notion.ExtractBlockContent(tt.block))
		})
	}
}

func TestExtractPageContent_DropsEmptyBlocks(t *testing.T) {
	blocks := []entity.Block{
		{Type: "heading_1", Payload: entity.BlockPayload{RichText: richText("Notes")}},
		{Type: "image"},
		{Type: "paragraph", Payload: entity.BlockPayload{RichText: richText("Some text")}},
		{Type: "paragraph"},
	}

	content := notion.ExtractPageContent(blocks)

	assert.Equal(t, []string{"# Notes", "Some text"}, content)
}

func TestBlock_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": "block-1",
		"type": "to_do",
		"has_children": false,
		"to_do": {
			"rich_text": [{"plain_text": "ship it"}],
			"checked": true
		}
	}`

	var block entity.Block
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, "block-1", block.ID)
	assert.Equal(t, "to_do", block.Type)
	require.NotNil(t, block.Payload.Checked)
	assert.True(t, *block.Payload.Checked)
	assert.Equal(t, "[x] ship it", notion.ExtractBlockContent(block))
}

func TestBlock_UnmarshalJSON_UnknownTypeKeepsEnvelope(t *testing.T) {
	raw := `{"id": "block-2", "type": "embed", "has_children": true, "embed": {"url": "https://example.com"}}`

	var block entity.Block
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, "embed", block.Type)
	assert.True(t, block.HasChildren)
	assert.Empty(t, block.Payload.RichText)
}

func TestPage_Title(t *testing.T) {
	props, err := json.Marshal(map[string]any{
		"Tags": map[string]any{"type": "multi_select"},
		"Name": map[string]any{
			"type": "title",
			"title": []map[string]string{
				{"plain_text": "Weekly "},
				{"plain_text": "review"},
			},
		},
	})
	require.NoError(t, err)

	page := entity.Page{Properties: props}
	assert.Equal(t, "Weekly review", page.Title())
}

func TestPage_Title_NoTitleProperty(t *testing.T) {
	page := entity.Page{Properties: json.RawMessage(`{"Status": {"type": "select"}}`)}
	assert.Equal(t, "", page.Title())

	empty := entity.Page{}
	assert.Equal(t, "", empty.Title())
}
