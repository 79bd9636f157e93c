package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document keeps the raw bytes next to the decoded fields so the full-dump
// fallback preserves the order the index returned.
type Document struct {
	Fields map[string]interface{}
	Raw    json.RawMessage
}

func NewDocument(raw json.RawMessage) (Document, error) {
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Document{}, fmt.Errorf("decode search document: %w", err)
	}
	return Document{Fields: fields, Raw: raw}, nil
}

// Snippet returns the first truthy field among fields, or the whole
// document as compact JSON. The second result is false on the dump path.
func Snippet(doc Document, fields []string) (string, bool) {
	for _, name := range fields {
		if text, ok := fieldText(doc.Fields[name]); ok {
			return text, true
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc.Raw); err != nil {
		data, _ := json.Marshal(doc.Fields)
		return string(data), false
	}
	return buf.String(), false
}

func fieldText(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case float64:
		if val == 0 {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}

// BuildContext formats documents as numbered results for the system prompt.
func BuildContext(docs []Document, fields []string) string {
	if len(docs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		text, _ := Snippet(doc, fields)
		parts = append(parts, fmt.Sprintf("Result %d:\n%s", i+1, text))
	}
	return strings.Join(parts, "\n---\n")
}
