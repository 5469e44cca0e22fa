package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

type FieldType int

const (
	String FieldType = iota
	Number
	Bool
	Time
	StringArray
	// Object fields can be selected but neither filtered nor sorted.
	Object
)

type Field struct {
	Column string
	Type   FieldType
}

// Collection describes the table behind a list endpoint and the fields clients may use.
type Collection struct {
	Table   string
	Columns string
	// Fields is keyed by the json name clients send.
	Fields      map[string]Field
	DefaultSort string
}

func (c *Collection) field(name string) (Field, error) {
	f, ok := c.Fields[name]
	if !ok {
		return Field{}, fmt.Errorf("unknown field %q", name)
	}
	return f, nil
}

func (f Field) coerce(name, raw string) (any, error) {
	switch f.Type {
	case Number:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q expects a number, got %q", name, raw)
		}
		return v, nil
	case Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q expects true or false, got %q", name, raw)
		}
		return v, nil
	case Time:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if v, err := time.Parse(layout, raw); err == nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("field %q expects a date, got %q", name, raw)
	default:
		return raw, nil
	}
}

func (f Field) coerceList(name string, raws []string) (any, error) {
	switch f.Type {
	case Number:
		out := make([]float64, 0, len(raws))
		for _, raw := range raws {
			v, err := f.coerce(name, raw)
			if err != nil {
				return nil, err
			}
			out = append(out, v.(float64))
		}
		return pq.Array(out), nil
	case String, StringArray:
		return pq.Array(raws), nil
	default:
		return nil, fmt.Errorf("operator in is not supported for field %q", name)
	}
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
