package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type PacklistValueKind int

const (
	// PacklistValueUnsupported covers booleans, null, arrays and objects
	// without a quantity. Such entries never appear in a categorized view.
	PacklistValueUnsupported PacklistValueKind = iota
	PacklistValueCount
	PacklistValueText
	PacklistValueQuantity
)

// PacklistValue is the value side of a packing list entry: a plain count,
// a free-text description or an object carrying an explicit quantity.
type PacklistValue struct {
	Kind     PacklistValueKind
	Quantity float64
	Text     string

	raw json.RawMessage
}

// PacklistEntry is one label/value pair in insertion order.
type PacklistEntry struct {
	Label string
	Value PacklistValue
}

// Packlist is an insertion-ordered label -> value mapping. It decodes from
// and encodes to a JSON object without losing key order.
type Packlist []PacklistEntry

func CountEntry(label string, n float64) PacklistEntry {
	return PacklistEntry{Label: label, Value: PacklistValue{Kind: PacklistValueCount, Quantity: n}}
}

func TextEntry(label, text string) PacklistEntry {
	return PacklistEntry{Label: label, Value: PacklistValue{Kind: PacklistValueText, Text: text}}
}

func QuantityEntry(label string, n float64) PacklistEntry {
	return PacklistEntry{Label: label, Value: PacklistValue{Kind: PacklistValueQuantity, Quantity: n}}
}

func (p *Packlist) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("packlist: expected object, got %v", tok)
	}

	out := make(Packlist, 0)
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("packlist: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("packlist: value for %q: %w", label, err)
		}
		entry := PacklistEntry{Label: label, Value: parsePacklistValue(raw)}
		// Repeated keys keep their first position and take the last value.
		if i, seen := index[label]; seen {
			out[i] = entry
			continue
		}
		index[label] = len(out)
		out = append(out, entry)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

func (p Packlist) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := entry.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v PacklistValue) MarshalJSON() ([]byte, error) {
	if len(v.raw) > 0 {
		return v.raw, nil
	}
	switch v.Kind {
	case PacklistValueCount:
		return []byte(strconv.FormatFloat(v.Quantity, 'f', -1, 64)), nil
	case PacklistValueText:
		return json.Marshal(v.Text)
	case PacklistValueQuantity:
		return json.Marshal(struct {
			Quantity float64 `json:"quantity"`
		}{v.Quantity})
	default:
		return []byte("null"), nil
	}
}

func parsePacklistValue(raw json.RawMessage) PacklistValue {
	v := PacklistValue{raw: append(json.RawMessage(nil), raw...)}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return v
	}
	switch trimmed[0] {
	case '"':
		if err := json.Unmarshal(trimmed, &v.Text); err == nil {
			v.Kind = PacklistValueText
		}
	case '{':
		var obj struct {
			Quantity *float64 `json:"quantity"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil && obj.Quantity != nil {
			v.Kind = PacklistValueQuantity
			v.Quantity = *obj.Quantity
		}
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err == nil {
			v.Kind = PacklistValueCount
			v.Quantity = n
		}
	}
	return v
}
