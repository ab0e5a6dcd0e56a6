package postgres

import (
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/goccy/go-json"
)

// JSONAdapter keeps any JSON value verbatim in a types.JSON column.
type JSONAdapter struct{}

func (JSONAdapter) Unmarshal(v json.RawMessage) (types.JSON, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return types.JSON(append([]byte(nil), v...)), nil
}

func (JSONAdapter) Marshal(b types.JSON) (json.RawMessage, error) {
	if len(b) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(b), nil
}
