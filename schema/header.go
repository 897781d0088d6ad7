package schema

import (
	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// validateResponseHeader enforces the header policy shared by every response:
// known request name, required header fields, namespace/name agreement for
// the request's category, payload version and message id constraints.
func (v *ResponseValidator) validateResponseHeader(request, response map[string]interface{}) *contracts.ValidationError {
	requestName := messageName(request)

	if !contracts.IsRequestName(requestName) {
		return contracts.NewValidationError("Request", "request name is invalid", request)
	}

	header, ok := contracts.AsMap(response["header"])
	if !ok || header == nil {
		return contracts.NewValidationError("Response", "response header is missing", response)
	}

	for _, key := range contracts.RequiredHeaderKeys {
		if _, exists := header[key]; !exists {
			return contracts.NewValidationError("Response", "header."+key+" is required", header)
		}
	}

	namespace, _ := header["namespace"].(string)
	name, _ := header["name"].(string)

	switch {
	case contracts.IsDiscoveryRequest(requestName):
		if namespace != contracts.NamespaceDiscovery {
			return contracts.NewValidationError("Discovery Response", "header.namespace must be "+contracts.NamespaceDiscovery, header)
		}
		if !contracts.IsDiscoveryResponse(name) {
			return contracts.NewValidationError("Discovery Response", "header.name is invalid", header)
		}
		if expected := contracts.ResponseNameFor(requestName); name != expected {
			return contracts.NewValidationError("Discovery Response", "header.name must be "+expected+" for "+requestName, header)
		}

	case contracts.IsControlRequest(requestName):
		if namespace != contracts.NamespaceControl {
			return contracts.NewValidationError("Control Response", "header.namespace must be "+contracts.NamespaceControl, header)
		}
		if !contracts.IsControlConfirmation(name) && !contracts.IsControlErrorResponse(name) {
			return contracts.NewValidationError("Control Response", "header.name is invalid", header)
		}
		// Any control error name is a legitimate outcome for any control
		// request; only confirmations must pair with the request name.
		if !contracts.IsControlErrorResponse(name) {
			if expected := contracts.ConfirmationNameFor(requestName); name != expected {
				return contracts.NewValidationError("Control Response", "header.name must be an error response name or "+expected+" for "+requestName, header)
			}
		}

	case contracts.IsSystemRequest(requestName):
		if namespace != contracts.NamespaceSystem {
			return contracts.NewValidationError("System Response", "header.namespace must be "+contracts.NamespaceSystem, header)
		}
		if !contracts.IsSystemResponse(name) {
			return contracts.NewValidationError("System Response", "header.name is invalid", header)
		}
		if expected := contracts.ResponseNameFor(requestName); name != expected {
			return contracts.NewValidationError("System Response", "header.name must be "+expected+" for "+requestName, header)
		}
	}

	if version, _ := header["payloadVersion"].(string); version != contracts.PayloadVersion {
		return contracts.NewValidationError(name, "header.payloadVersion must be '2' (string)", header)
	}

	messageID, ok := header["messageId"].(string)
	if !ok || !isValidMessageID(messageID) {
		return contracts.NewValidationError(name, "header.messageId must be specified in alphanumeric characters or -", header)
	}
	if isEmptyString(messageID) {
		return contracts.NewValidationError(name, "header.messageId must not be empty", header)
	}
	if len(messageID) > 127 {
		return contracts.NewValidationError(name, "header.messageId must not exceed 127 characters", header)
	}

	return nil
}
