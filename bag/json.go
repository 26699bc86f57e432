package bag

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MarshalJSON encodes the bag as a JSON object with keys in insertion
// order. It implements [json.Marshaler].
func (b *Bag) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, fmt.Errorf("bag: encode %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the content of b with the decoded JSON object or
// array, keeping the document's key order. It implements [json.Unmarshaler].
func (b *Bag) UnmarshalJSON(data []byte) error {
	decoded, err := FromJSON(data)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// FromJSON decodes a JSON object (or array, keyed by index) into a Bag,
// keeping the document's key order. Integral numbers become int64, other
// numbers float64.
func FromJSON(data []byte) (*Bag, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON is like [FromJSON] but reads a single document from r.
func DecodeJSON(r io.Reader) (*Bag, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: unexpected extra content after JSON document", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return rootBag(v)
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			b := Empty()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				b.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return b, nil
		case '[':
			list := make([]any, 0)
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	default:
		return normalize(t), nil
	}
}

func rootBag(v any) (*Bag, error) {
	switch x := v.(type) {
	case *Bag:
		return x, nil
	case []any:
		return FromSlice(x), nil
	case nil:
		return Empty(), nil
	}
	return nil, fmt.Errorf("%w: document root must be a mapping or sequence, got %T", ErrDecode, v)
}
