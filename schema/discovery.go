package schema

import (
	"fmt"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// validateDiscoveryResponse checks a discovery response: header policy, then
// the discoveredAppliances listing and every descriptor in it.
func (v *ResponseValidator) validateDiscoveryResponse(request, response map[string]interface{}) error {
	if err := v.validateResponseHeader(request, response); err != nil {
		return err
	}
	responseName := messageName(response)

	payload, ok := contracts.AsMap(response["payload"])
	if response["payload"] == nil {
		return contracts.NewValidationError(responseName, "payload is missing", response)
	}
	if !ok {
		return contracts.NewValidationError(responseName, "payload must be a mapping", response["payload"])
	}

	appliancesValue, exists := payload["discoveredAppliances"]
	if !exists {
		return contracts.NewValidationError(responseName, "payload.discoveredAppliances is missing", payload)
	}
	appliances, ok := contracts.AsList(appliancesValue)
	if !ok {
		return contracts.NewValidationError(responseName, "payload.discoveredAppliances must be a list", payload)
	}
	if len(appliances) > contracts.MaxDiscoveredAppliances {
		return contracts.NewValidationError(responseName, fmt.Sprintf("payload.discoveredAppliances must not contain more than %d appliances", contracts.MaxDiscoveredAppliances), payload)
	}

	for _, entry := range appliances {
		appliance, ok := contracts.AsMap(entry)
		if !ok {
			return contracts.NewValidationError(responseName, "discovered appliance must be a mapping", entry)
		}
		if err := validateDiscoveredAppliance(responseName, appliance); err != nil {
			return err
		}
	}
	return nil
}

// validateDiscoveredAppliance enforces the descriptor field rules for one
// discovered appliance.
func validateDiscoveredAppliance(responseName string, appliance map[string]interface{}) *contracts.ValidationError {
	for _, key := range contracts.RequiredApplianceKeys {
		if _, exists := appliance[key]; !exists {
			return contracts.NewValidationError(responseName, key+" is missing", appliance)
		}
	}

	if isEmptyString(appliance["applianceId"]) {
		return contracts.NewValidationError(responseName, "applianceId must not be empty", appliance)
	}
	applianceID, _ := stringValue(appliance["applianceId"])
	if len(applianceID) > 256 {
		return contracts.NewValidationError(responseName, "applianceId must not exceed 256 characters", appliance)
	}
	if !isValidApplianceID(applianceID) {
		return contracts.NewValidationError(responseName, "applianceId must be alphanumeric or include these special characters: _-=#;:?@&", appliance)
	}

	for _, field := range []string{"manufacturerName", "modelName", "version", "friendlyName", "friendlyDescription"} {
		if isEmptyString(appliance[field]) {
			return contracts.NewValidationError(responseName, field+" must not be empty", appliance)
		}
		value, _ := stringValue(appliance[field])
		if len(value) > 128 {
			return contracts.NewValidationError(responseName, field+" must not exceed 128 characters", appliance)
		}
		if field == "friendlyName" && !isAlphanumericWithSpaces(value) {
			return contracts.NewValidationError(responseName, "friendlyName must be specified in alphanumeric characters and spaces", appliance)
		}
	}

	if _, ok := appliance["isReachable"].(bool); !ok {
		return contracts.NewValidationError(responseName, "isReachable must be a boolean", appliance)
	}

	actions, ok := contracts.AsList(appliance["actions"])
	if !ok {
		return contracts.NewValidationError(responseName, "actions must be a list", appliance)
	}
	if len(actions) == 0 {
		return contracts.NewValidationError(responseName, "actions must not be empty", appliance)
	}
	for _, entry := range actions {
		action, ok := stringValue(entry)
		if !ok || !contracts.IsValidAction(action) {
			return contracts.NewValidationError(responseName, fmt.Sprintf("%v is an invalid action", entry), appliance)
		}
	}

	if details := appliance["additionalApplianceDetails"]; details != nil {
		if serializedSize(details) > contracts.MaxAdditionalDetailsBytes {
			return contracts.NewValidationError(responseName, fmt.Sprintf("additionalApplianceDetails must not exceed %d bytes", contracts.MaxAdditionalDetailsBytes), appliance)
		}
	}

	return nil
}
