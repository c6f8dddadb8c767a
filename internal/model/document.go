package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DocumentKind tags the variant held by a Document node.
type DocumentKind string

const (
	KindNull   DocumentKind = "null"
	KindBool   DocumentKind = "boolean"
	KindNumber DocumentKind = "number"
	KindString DocumentKind = "string"
	KindArray  DocumentKind = "array"
	KindObject DocumentKind = "object"
)

// Document is a parsed, schema-less content payload represented as a tagged
// value tree. The schema validator and template renderer traverse it instead
// of reaching into raw JSON. Numbers are kept as json.Number so integer
// checks don't lose precision.
type Document struct {
	value any
}

// ParseDocument parses a raw JSON payload into a Document.
func ParseDocument(raw json.RawMessage) (*Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse document: empty payload")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{value: v}, nil
}

// Kind returns the variant tag of this node.
func (d *Document) Kind() DocumentKind {
	switch d.value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}
	return KindNull
}

// IsNull reports whether the node is JSON null.
func (d *Document) IsNull() bool {
	return d.value == nil
}

// Has reports whether an object node carries the named field, null included.
func (d *Document) Has(name string) bool {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj[name]
	return ok
}

// Field returns the named child of an object node. The second return is
// false when the node is not an object or the field is absent.
func (d *Document) Field(name string) (*Document, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[name]
	if !ok {
		return nil, false
	}
	return &Document{value: v}, true
}

// StringValue returns the node's string payload; ok is false for non-strings.
func (d *Document) StringValue() (string, bool) {
	s, ok := d.value.(string)
	return s, ok
}

// IsInteger reports whether the node is a number with no fractional part.
func (d *Document) IsInteger() bool {
	n, ok := d.value.(json.Number)
	if !ok {
		return false
	}
	_, err := n.Int64()
	return err == nil
}

// Text renders the node as a plain string: strings verbatim, numbers and
// booleans in their literal form, null as the empty string, and composite
// nodes as compact JSON.
func (d *Document) Text() string {
	switch v := d.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
