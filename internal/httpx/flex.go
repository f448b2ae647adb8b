package httpx

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NameList decodes a JSON array whose items are either strings or objects
// carrying "name" (falling back to "id"). The frontend sends both shapes.
type NameList []string

func (n *NameList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	out := make(NameList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Name string          `json:"name"`
			ID   json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("list item must be a string or an object: %w", err)
		}
		switch {
		case obj.Name != "":
			out = append(out, obj.Name)
		case len(obj.ID) > 0:
			out = append(out, rawScalar(obj.ID))
		}
	}
	*n = out
	return nil
}

func rawScalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}
