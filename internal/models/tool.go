// ABOUTME: Tool describes a callable function exposed to the language model
// ABOUTME: Parameters follow the JSON-schema object shape the model expects
package models

import "encoding/json"

// Tool declares a model-callable function. The model is free to call none,
// one, or any of the declared tools on a turn.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}
