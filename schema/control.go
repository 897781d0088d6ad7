package schema

import (
	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// payloadRule checks the payload shape for one control response name.
type payloadRule func(responseName string, payload map[string]interface{}) *contracts.ValidationError

// controlPayloadRules maps each control response name with an itemized
// payload shape to its rule set. Names absent from the table carry no field
// rules beyond the empty/non-empty membership check.
var controlPayloadRules = map[string]payloadRule{
	"SetTargetTemperatureConfirmation":       temperatureConfirmationRule,
	"IncrementTargetTemperatureConfirmation": temperatureConfirmationRule,
	"DecrementTargetTemperatureConfirmation": temperatureConfirmationRule,
	"ValueOutOfRangeError":                   valueOutOfRangeRule,
	"DependentServiceUnavailableError":       dependentServiceRule,
	"TargetFirmwareOutdatedError":            firmwareOutdatedRule,
	"TargetBridgeFirmwareOutdatedError":      firmwareOutdatedRule,
	"UnwillingToSetValueError":               unwillingToSetValueRule,
	"RateLimitExceededError":                 rateLimitRule,
	"NotSupportedInCurrentModeError":         currentModeRule,
	"UnexpectedInformationReceivedError":     faultingParameterRule,
}

// validateControlResponse checks a control response: header policy, the
// empty/non-empty payload membership rule, and the per-name payload rules.
func (v *ResponseValidator) validateControlResponse(request, response map[string]interface{}) error {
	if err := v.validateResponseHeader(request, response); err != nil {
		return err
	}
	responseName := messageName(response)

	payloadValue := response["payload"]
	if payloadValue == nil {
		return contracts.NewValidationError(responseName, "payload is missing", payloadValue)
	}
	payload, ok := contracts.AsMap(payloadValue)
	if !ok {
		return contracts.NewValidationError(responseName, "payload must be a mapping", payloadValue)
	}

	if contracts.RequiresNonEmptyPayload(responseName) {
		if len(payload) == 0 {
			return contracts.NewValidationError(responseName, "payload must not be empty", payload)
		}
	} else if len(payload) > 0 {
		return contracts.NewValidationError(responseName, "payload must be empty", payload)
	}

	if rule, exists := controlPayloadRules[responseName]; exists {
		if err := rule(responseName, payload); err != nil {
			return err
		}
	}
	return nil
}

// temperatureConfirmationRule checks the thermostat confirmation shape:
// targetTemperature.value, temperatureMode.value and a previousState object
// mirroring both fields.
func temperatureConfirmationRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	for _, key := range []string{"targetTemperature", "temperatureMode", "previousState"} {
		if _, exists := payload[key]; !exists {
			return contracts.NewValidationError(responseName, "payload."+key+" is missing", payload)
		}
	}
	if err := temperatureStateRule(responseName, "payload", payload); err != nil {
		return err
	}

	previousState, ok := contracts.AsMap(payload["previousState"])
	if !ok {
		return contracts.NewValidationError(responseName, "payload.previousState must be a mapping", payload)
	}
	for _, key := range []string{"targetTemperature", "temperatureMode"} {
		if _, exists := previousState[key]; !exists {
			return contracts.NewValidationError(responseName, "payload.previousState."+key+" is missing", payload)
		}
	}
	return temperatureStateRule(responseName, "payload.previousState", previousState)
}

// temperatureStateRule checks one targetTemperature/temperatureMode pair.
func temperatureStateRule(responseName, path string, state map[string]interface{}) *contracts.ValidationError {
	targetTemperature, ok := contracts.AsMap(state["targetTemperature"])
	if !ok {
		return contracts.NewValidationError(responseName, path+".targetTemperature.value is missing", state)
	}
	value, exists := targetTemperature["value"]
	if !exists {
		return contracts.NewValidationError(responseName, path+".targetTemperature.value is missing", state)
	}
	if !isNumber(value) {
		return contracts.NewValidationError(responseName, path+".targetTemperature.value must be a number", state)
	}

	temperatureMode, ok := contracts.AsMap(state["temperatureMode"])
	if !ok {
		return contracts.NewValidationError(responseName, path+".temperatureMode.value is missing", state)
	}
	mode, exists := temperatureMode["value"]
	if !exists {
		return contracts.NewValidationError(responseName, path+".temperatureMode.value is missing", state)
	}
	if modeName, ok := stringValue(mode); !ok || !contracts.IsValidTemperatureMode(modeName) {
		return contracts.NewValidationError(responseName, path+".temperatureMode.value is invalid", state)
	}
	return nil
}

func valueOutOfRangeRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	for _, key := range []string{"minimumValue", "maximumValue"} {
		value, exists := payload[key]
		if !exists {
			return contracts.NewValidationError(responseName, "payload."+key+" is missing", payload)
		}
		if !isNumber(value) {
			return contracts.NewValidationError(responseName, "payload."+key+" must be a number", payload)
		}
	}
	return nil
}

func dependentServiceRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	value, exists := payload["dependentServiceName"]
	if !exists {
		return contracts.NewValidationError(responseName, "payload.dependentServiceName is missing", payload)
	}
	if !isAlphanumericWithSpaces(value) {
		return contracts.NewValidationError(responseName, "payload.dependentServiceName must be specified in alphanumeric characters and spaces", payload)
	}
	return nil
}

func firmwareOutdatedRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	for _, key := range []string{"minimumFirmwareVersion", "currentFirmwareVersion"} {
		value, exists := payload[key]
		if !exists {
			return contracts.NewValidationError(responseName, "payload."+key+" is missing", payload)
		}
		if isEmptyString(value) {
			return contracts.NewValidationError(responseName, "payload."+key+" must not be empty", payload)
		}
		if !isAlphanumeric(value) {
			return contracts.NewValidationError(responseName, "payload."+key+" must be specified in alphanumeric characters", payload)
		}
	}
	return nil
}

func unwillingToSetValueRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	errorInfoValue, exists := payload["errorInfo"]
	if !exists {
		return contracts.NewValidationError(responseName, "payload.errorInfo is missing", payload)
	}
	errorInfo, ok := contracts.AsMap(errorInfoValue)
	if !ok {
		return contracts.NewValidationError(responseName, "payload.errorInfo must be a mapping", payload)
	}
	for _, key := range []string{"code", "description"} {
		if _, exists := errorInfo[key]; !exists {
			return contracts.NewValidationError(responseName, "payload.errorInfo."+key+" is missing", payload)
		}
	}
	if code, ok := stringValue(errorInfo["code"]); !ok || !contracts.IsValidErrorInfoCode(code) {
		return contracts.NewValidationError(responseName, "payload.errorInfo.code is invalid", payload)
	}
	return nil
}

func rateLimitRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	for _, key := range []string{"rateLimit", "timeUnit"} {
		if _, exists := payload[key]; !exists {
			return contracts.NewValidationError(responseName, "payload."+key+" is missing", payload)
		}
	}
	if !isDigits(payload["rateLimit"]) {
		return contracts.NewValidationError(responseName, "payload.rateLimit must be a positive integer", payload)
	}
	if unit, ok := stringValue(payload["timeUnit"]); !ok || !contracts.IsValidTimeUnit(unit) {
		return contracts.NewValidationError(responseName, "payload.timeUnit is invalid", payload)
	}
	return nil
}

func currentModeRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	value, exists := payload["currentDeviceMode"]
	if !exists {
		return contracts.NewValidationError(responseName, "payload.currentDeviceMode is missing", payload)
	}
	if mode, ok := stringValue(value); !ok || !contracts.IsValidDeviceMode(mode) {
		return contracts.NewValidationError(responseName, "payload.currentDeviceMode is invalid", payload)
	}
	return nil
}

func faultingParameterRule(responseName string, payload map[string]interface{}) *contracts.ValidationError {
	value, exists := payload["faultingParameter"]
	if !exists {
		return contracts.NewValidationError(responseName, "payload.faultingParameter is missing", payload)
	}
	if isEmptyString(value) {
		return contracts.NewValidationError(responseName, "payload.faultingParameter must not be empty", payload)
	}
	return nil
}
