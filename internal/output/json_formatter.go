package output

import (
	"encoding/json"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// JSONFormatter renders the full regime result, calculation log included
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.RegimeResult) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
