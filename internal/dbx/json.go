// Package dbx holds small database/sql helpers shared by the content repositories.
package dbx

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON stores V in a JSONB column. A NULL column scans to the zero value.
type JSON[V any] struct {
	V V
}

func NewJSON[V any](v V) JSON[V] {
	return JSON[V]{V: v}
}

func (j JSON[V]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *JSON[V]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		var zero V
		j.V = zero
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("dbx: cannot scan %T into JSON", src)
	}
	return json.Unmarshal(raw, &j.V)
}
