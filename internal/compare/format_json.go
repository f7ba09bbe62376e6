package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
	// Detailed adds the full regime results, calculation logs included
	Detailed bool
}

type detailedComparison struct {
	*ComparisonSet
	Details map[domain.Regime]*domain.RegimeResult `json:"results"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var payload any = compSet
	if jf.Detailed {
		payload = detailedComparison{
			ComparisonSet: compSet,
			Details: map[domain.Regime]*domain.RegimeResult{
				domain.RegimeOld: compSet.Old.Result,
				domain.RegimeNew: compSet.New.Result,
			},
		}
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
