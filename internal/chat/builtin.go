// ABOUTME: Built-in tools registered with the orchestrator by default
// ABOUTME: Land-value gain coefficient lookup by years of property tenure
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mpardo/assistant-backend/internal/models"
)

// gainCoefficients maps full years of tenure to the applicable land-value
// gain coefficient. Tenures of 20 years or more use the long-hold rate.
var gainCoefficients = map[int]float64{
	0: 0.15, 1: 0.15, 2: 0.14, 3: 0.14, 4: 0.16,
	5: 0.18, 6: 0.19, 7: 0.20, 8: 0.19, 9: 0.15,
	10: 0.12, 11: 0.10, 12: 0.09, 13: 0.09, 14: 0.09,
	15: 0.09, 16: 0.10, 17: 0.13, 18: 0.17, 19: 0.23,
}

const longHoldCoefficient = 0.40

// GainCoefficient returns the coefficient for the given years of tenure
func GainCoefficient(yearsHeld int) float64 {
	if c, ok := gainCoefficients[yearsHeld]; ok {
		return c
	}
	return longHoldCoefficient
}

// RegisterBuiltinTools adds the default tool set to the registry
func RegisterBuiltinTools(registry *Registry) {
	registry.Register(models.Tool{
		Name:        "property_gain_coefficient",
		Description: "Look up the land-value gain coefficient applicable to a property sale, given the number of full years the property was held.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"years_held": {
					"type": "integer",
					"description": "Number of full years the property was held before the sale"
				}
			},
			"required": ["years_held"]
		}`),
	}, HandlerFunc(gainCoefficientHandler))
}

func gainCoefficientHandler(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		YearsHeld int `json:"years_held"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", fmt.Errorf("invalid arguments for property_gain_coefficient: %w", err)
	}

	c := GainCoefficient(params.YearsHeld)
	return fmt.Sprintf("For a property held %d years the applicable gain coefficient is %.2f.", params.YearsHeld, c), nil
}
