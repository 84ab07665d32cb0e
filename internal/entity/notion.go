package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Page is a Notion page as returned by the database query API. Content is
// not part of the wire format; it is attached during sync after the page's
// child blocks have been fetched and extracted.
type Page struct {
	ID             string          `json:"id"`
	CreatedTime    time.Time       `json:"created_time"`
	LastEditedTime time.Time       `json:"last_edited_time"`
	URL            string          `json:"url"`
	Archived       bool            `json:"archived"`
	Properties     json.RawMessage `json:"properties"`

	Content []string `json:"-"`
}

// Title extracts the page title from the title-typed property, if any.
func (p *Page) Title() string {
	if len(p.Properties) == 0 {
		return ""
	}

	var props map[string]struct {
		Type  string     `json:"type"`
		Title []RichText `json:"title"`
	}
	if err := json.Unmarshal(p.Properties, &props); err != nil {
		return ""
	}

	for _, prop := range props {
		if prop.Type != "title" {
			continue
		}
		var sb strings.Builder
		for _, rt := range prop.Title {
			sb.WriteString(rt.PlainText)
		}
		return sb.String()
	}

	return ""
}

// RichText is a single rich text fragment inside a block or property.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// BlockPayload holds the type-specific fields shared by the block types we
// extract text from.
type BlockPayload struct {
	RichText []RichText `json:"rich_text"`
	Checked  *bool      `json:"checked"`
	Language string     `json:"language"`
}

// Block is a Notion content block. The API nests the payload under a key
// named after the block type, so unmarshalling pulls it out by type.
type Block struct {
	ID          string
	Type        string
	HasChildren bool
	Payload     BlockPayload
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var envelope struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	b.ID = envelope.ID
	b.Type = envelope.Type
	b.HasChildren = envelope.HasChildren

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if payload, ok := fields[envelope.Type]; ok {
		if err := json.Unmarshal(payload, &b.Payload); err != nil {
			return err
		}
	}

	return nil
}

// DatabaseQueryRequest is the body for POST /v1/databases/{id}/query.
type DatabaseQueryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// DatabaseQueryResponse is one page of database query results.
type DatabaseQueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// BlockChildrenResponse is one page of a block's children.
type BlockChildrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}
