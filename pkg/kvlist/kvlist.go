// Package kvlist provides an ordered list of key/value pairs that
// serializes as a JSON object. It backs the free-form detail maps
// (pricing_details, quick_info) where key order is part of the data and a
// plain Go map would scramble it.
package kvlist

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Kind tags the type carried by a Value.
type Kind int

const (
	StringKind Kind = iota
	NumberKind
)

// Value is a string-or-number union. Other JSON value types are rejected
// at decode time.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

func String(s string) Value  { return Value{Kind: StringKind, Str: s} }
func Number(n float64) Value { return Value{Kind: NumberKind, Num: n} }

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == NumberKind {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Str)
}

// Pair is one entry of a List.
type Pair struct {
	Key   string
	Value Value
}

// List is an ordered set of key/value pairs. Insertion order survives both
// encode and decode.
type List []Pair

func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := kv.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *List) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("kvlist: expected JSON object, got %v", tok)
	}

	out := List{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case string:
			out = append(out, Pair{Key: key, Value: String(v)})
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return fmt.Errorf("kvlist: invalid number for key %q: %w", key, err)
			}
			out = append(out, Pair{Key: key, Value: Number(n)})
		default:
			return fmt.Errorf("kvlist: value for key %q must be a string or number", key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// Get returns the value for key and whether it was present.
func (l List) Get(key string) (Value, bool) {
	for _, kv := range l {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return Value{}, false
}

// Value implements driver.Valuer so a List persists as a JSON column.
func (l List) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *List) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("kvlist: cannot scan %T", src)
	}
}
