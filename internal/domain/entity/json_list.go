package entity

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
)

// decodeStringList reads a JSON array column that should hold strings.
// Numbers are accepted and formatted, so ["12", 12] both yield "12".
func decodeStringList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode json list: %w", err)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("decode json list: unexpected element %v", it)
		}
	}
	return out, nil
}

func encodeStringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// JSONContains builds the jsonb containment argument for `col @> ?::jsonb`.
func JSONContains(value string) string {
	b, _ := json.Marshal([]string{value})
	return string(b)
}
