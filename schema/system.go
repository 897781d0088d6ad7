package schema

import (
	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// validateSystemResponse checks a health check response: header policy plus
// the two-field payload (non-empty description, boolean isHealthy).
func (v *ResponseValidator) validateSystemResponse(request, response map[string]interface{}) error {
	if err := v.validateResponseHeader(request, response); err != nil {
		return err
	}
	responseName := messageName(response)

	if response["payload"] == nil {
		return contracts.NewValidationError(responseName, "payload is missing", response)
	}
	payload, ok := contracts.AsMap(response["payload"])
	if !ok {
		return contracts.NewValidationError(responseName, "payload must be a mapping", response["payload"])
	}

	for _, key := range []string{"description", "isHealthy"} {
		if _, exists := payload[key]; !exists {
			return contracts.NewValidationError(responseName, "payload."+key+" is missing", payload)
		}
	}
	if isEmptyString(payload["description"]) {
		return contracts.NewValidationError(responseName, "payload.description must not be empty", payload)
	}
	if _, ok := payload["isHealthy"].(bool); !ok {
		return contracts.NewValidationError(responseName, "payload.isHealthy must be a boolean", payload)
	}
	return nil
}
