package output

import (
	"encoding/json"

	"github.com/itrgo/tax-estimator/internal/domain"
)

// JSONFormatter serializes the computation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ComputationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
