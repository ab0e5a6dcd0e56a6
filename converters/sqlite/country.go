package sqlite

import (
	"strings"

	"github.com/Station-Manager/xmladapters/converters/common"
	"github.com/aarondl/null/v8"
)

// CountryAdapter binds a country name to the null.String sqlite models store,
// trimming surrounding whitespace. An empty name is null.
type CountryAdapter struct {
	common.NullStringAdapter
}

func (a CountryAdapter) Unmarshal(v string) (null.String, error) {
	return a.NullStringAdapter.Unmarshal(strings.TrimSpace(v))
}
