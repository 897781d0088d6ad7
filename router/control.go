package router

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hyandell/alexa-smarthome-validation/catalog"
	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// Simulated thermostat characteristics.
const (
	previousTemperature = 21.0
	minimumTemperature  = 5.0
	maximumTemperature  = 30.0
)

// offlineApplianceID simulates a device that accepts any control request but
// always reports itself offline.
const offlineApplianceID = "sample-5"

// handleControl fabricates the control outcome for the targeted appliance:
// a temperature response for thermostats, the documented error payload for
// simulated error appliances, and a plain confirmation otherwise.
func (r *Router) handleControl(request contracts.Message) (contracts.Message, error) {
	payload, _ := request.Payload()
	applianceID := applianceIDFrom(payload)
	if applianceID == "" {
		return nil, contracts.NewValidationError("Request", "payload.appliance.applianceId is missing", payload)
	}

	switch {
	case applianceID == "ThermostatAuto-001":
		return r.temperatureResponse(request, "AUTO")
	case applianceID == "ThermostatHeat-001":
		return r.temperatureResponse(request, "HEAT")
	case applianceID == "ThermostatCool-001":
		return r.temperatureResponse(request, "COOL")
	case catalog.IsErrorAppliance(applianceID):
		errorName := catalog.ErrorNameFor(applianceID)
		header := contracts.NewHeader(contracts.NamespaceControl, errorName, request.MessageID())
		return contracts.NewMessage(header, errorPayloadFor(errorName)), nil
	default:
		return r.confirmationResponse(request, applianceID)
	}
}

// confirmationResponse pairs the request name with its confirmation. The
// temperature confirmations carry the full thermostat payload; everything
// else is an empty-payload confirmation.
func (r *Router) confirmationResponse(request contracts.Message, applianceID string) (contracts.Message, error) {
	requestName := request.Name()
	responseName := contracts.ConfirmationNameFor(requestName)
	payload := map[string]interface{}{}

	switch requestName {
	case "SetTargetTemperatureRequest":
		target, err := requestNumber(request, "targetTemperature")
		if err != nil {
			return nil, err
		}
		payload = temperaturePayload(target, "AUTO", previousTemperature, "AUTO")
	case "IncrementTargetTemperatureRequest":
		delta, err := requestNumber(request, "deltaTemperature")
		if err != nil {
			return nil, err
		}
		payload = temperaturePayload(previousTemperature+delta, "AUTO", previousTemperature, "AUTO")
	case "DecrementTargetTemperatureRequest":
		delta, err := requestNumber(request, "deltaTemperature")
		if err != nil {
			return nil, err
		}
		payload = temperaturePayload(previousTemperature-delta, "AUTO", previousTemperature, "AUTO")
	}

	if applianceID == offlineApplianceID {
		responseName = "TargetOfflineError"
		payload = map[string]interface{}{}
	}

	header := contracts.NewHeader(contracts.NamespaceControl, responseName, request.MessageID())
	return contracts.NewMessage(header, payload), nil
}

// temperatureResponse answers a control request aimed at a real thermostat.
// Requests that would leave the supported range become ValueOutOfRangeError;
// non-temperature requests become UnexpectedInformationReceivedError.
func (r *Router) temperatureResponse(request contracts.Message, mode string) (contracts.Message, error) {
	requestName := request.Name()

	var target float64
	switch requestName {
	case "SetTargetTemperatureRequest":
		value, err := requestNumber(request, "targetTemperature")
		if err != nil {
			return nil, err
		}
		target = value
	case "IncrementTargetTemperatureRequest":
		delta, err := requestNumber(request, "deltaTemperature")
		if err != nil {
			return nil, err
		}
		target = previousTemperature + delta
	case "DecrementTargetTemperatureRequest":
		delta, err := requestNumber(request, "deltaTemperature")
		if err != nil {
			return nil, err
		}
		target = previousTemperature - delta
	default:
		header := contracts.NewHeader(contracts.NamespaceControl, "UnexpectedInformationReceivedError", request.MessageID())
		payload := map[string]interface{}{
			"faultingParameter": "request.name: " + requestName,
		}
		return contracts.NewMessage(header, payload), nil
	}

	if target < minimumTemperature || target > maximumTemperature {
		header := contracts.NewHeader(contracts.NamespaceControl, "ValueOutOfRangeError", request.MessageID())
		return contracts.NewMessage(header, errorPayloadFor("ValueOutOfRangeError")), nil
	}

	responseName := contracts.ConfirmationNameFor(requestName)
	header := contracts.NewHeader(contracts.NamespaceControl, responseName, request.MessageID())
	return contracts.NewMessage(header, temperaturePayload(target, mode, previousTemperature, mode)), nil
}

// errorPayloadFor returns the documented payload shape for a simulated error
// outcome. Names without an itemized shape carry an empty payload.
func errorPayloadFor(errorName string) map[string]interface{} {
	switch errorName {
	case "ValueOutOfRangeError":
		return map[string]interface{}{
			"minimumValue": minimumTemperature,
			"maximumValue": maximumTemperature,
		}
	case "DependentServiceUnavailableError":
		return map[string]interface{}{
			"dependentServiceName": "Customer Credentials Database",
		}
	case "TargetFirmwareOutdatedError", "TargetBridgeFirmwareOutdatedError":
		return map[string]interface{}{
			"minimumFirmwareVersion": "17",
			"currentFirmwareVersion": "6",
		}
	case "UnwillingToSetValueError":
		return map[string]interface{}{
			"errorInfo": map[string]interface{}{
				"code":        "ThermostatIsOff",
				"description": "The requested operation is unsafe because it requires changing the mode.",
			},
		}
	case "RateLimitExceededError":
		return map[string]interface{}{
			"rateLimit": "10",
			"timeUnit":  "HOUR",
		}
	case "NotSupportedInCurrentModeError":
		return map[string]interface{}{
			"currentDeviceMode": "AWAY",
		}
	case "UnexpectedInformationReceivedError":
		return map[string]interface{}{
			"faultingParameter": "value",
		}
	default:
		return map[string]interface{}{}
	}
}

// temperaturePayload assembles the thermostat confirmation payload with the
// mirrored previousState object.
func temperaturePayload(target float64, mode string, previous float64, previousMode string) map[string]interface{} {
	return map[string]interface{}{
		"targetTemperature": map[string]interface{}{
			"value": target,
		},
		"temperatureMode": map[string]interface{}{
			"value": mode,
		},
		"previousState": map[string]interface{}{
			"targetTemperature": map[string]interface{}{
				"value": previous,
			},
			"temperatureMode": map[string]interface{}{
				"value": previousMode,
			},
		},
	}
}

// applianceIDFrom digs payload.appliance.applianceId out of a request tree.
func applianceIDFrom(payload map[string]interface{}) string {
	appliance, ok := contracts.AsMap(payload["appliance"])
	if !ok {
		return ""
	}
	id, _ := appliance["applianceId"].(string)
	return id
}

// requestNumber extracts payload.<field>.value from the request as a float.
func requestNumber(request contracts.Message, field string) (float64, *contracts.ValidationError) {
	payload, ok := request.Payload()
	if !ok {
		return 0, contracts.NewValidationError("Request", "payload."+field+".value is missing", request)
	}
	holder, ok := contracts.AsMap(payload[field])
	if !ok {
		return 0, contracts.NewValidationError("Request", "payload."+field+".value is missing", payload)
	}
	value, exists := holder["value"]
	if !exists {
		return 0, contracts.NewValidationError("Request", "payload."+field+".value is missing", payload)
	}
	number, ok := toFloat(value)
	if !ok {
		return 0, contracts.NewValidationError("Request", "payload."+field+".value must be a number", payload)
	}
	return number, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
