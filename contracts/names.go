package contracts

import "strings"

// Protocol namespaces.
const (
	NamespaceDiscovery = "Alexa.ConnectedHome.Discovery"
	NamespaceControl   = "Alexa.ConnectedHome.Control"
	NamespaceSystem    = "Alexa.ConnectedHome.System"
)

// PayloadVersion is the only payload version this adapter speaks.
const PayloadVersion = "2"

// MaxDiscoveredAppliances caps the discovery listing size.
const MaxDiscoveredAppliances = 300

// MaxAdditionalDetailsBytes caps the serialized size of the auxiliary
// additionalApplianceDetails blob on a descriptor.
const MaxAdditionalDetailsBytes = 5000

// Request names per namespace.
var (
	DiscoveryRequestNames = []string{"DiscoverAppliancesRequest"}

	ControlRequestNames = []string{
		"TurnOnRequest",
		"TurnOffRequest",
		"SetTargetTemperatureRequest",
		"IncrementTargetTemperatureRequest",
		"DecrementTargetTemperatureRequest",
		"SetPercentageRequest",
		"IncrementPercentageRequest",
		"DecrementPercentageRequest",
	}

	SystemRequestNames = []string{"HealthCheckRequest"}
)

// Response names per namespace. Control requests have two families of
// outcomes: confirmations paired to the request name, and error names that
// are a legitimate outcome for any control request.
var (
	DiscoveryResponseNames = []string{"DiscoverAppliancesResponse"}

	ControlConfirmationNames = []string{
		"TurnOnConfirmation",
		"TurnOffConfirmation",
		"SetTargetTemperatureConfirmation",
		"IncrementTargetTemperatureConfirmation",
		"DecrementTargetTemperatureConfirmation",
		"SetPercentageConfirmation",
		"IncrementPercentageConfirmation",
		"DecrementPercentageConfirmation",
	}

	ControlErrorResponseNames = []string{
		"ValueOutOfRangeError",
		"TargetOfflineError",
		"BridgeOfflineError",
		"NoSuchTargetError",
		"DriverInternalError",
		"DependentServiceUnavailableError",
		"TargetConnectivityUnstableError",
		"TargetBridgeConnectivityUnstableError",
		"TargetFirmwareOutdatedError",
		"TargetBridgeFirmwareOutdatedError",
		"TargetHardwareMalfunctionError",
		"TargetBridgeHardwareMalfunctionError",
		"UnwillingToSetValueError",
		"RateLimitExceededError",
		"NotSupportedInCurrentModeError",
		"ExpiredAccessTokenError",
		"InvalidAccessTokenError",
		"UnsupportedTargetError",
		"UnsupportedOperationError",
		"UnsupportedTargetSettingError",
		"UnexpectedInformationReceivedError",
	}

	SystemResponseNames = []string{"HealthCheckResponse"}
)

// NonEmptyPayloadResponseNames lists the response names whose payload must be
// populated. Every other response name must carry an empty payload.
var NonEmptyPayloadResponseNames = []string{
	"SetTargetTemperatureConfirmation",
	"IncrementTargetTemperatureConfirmation",
	"DecrementTargetTemperatureConfirmation",
	"ValueOutOfRangeError",
	"DependentServiceUnavailableError",
	"TargetFirmwareOutdatedError",
	"TargetBridgeFirmwareOutdatedError",
	"UnwillingToSetValueError",
	"RateLimitExceededError",
	"NotSupportedInCurrentModeError",
	"UnexpectedInformationReceivedError",
}

// ValidActions enumerates every action a discovered appliance may advertise.
var ValidActions = []string{
	"setTargetTemperature",
	"incrementTargetTemperature",
	"decrementTargetTemperature",
	"setPercentage",
	"incrementPercentage",
	"decrementPercentage",
	"turnOff",
	"turnOn",
}

// Fixed value enumerations referenced by control payload rules.
var (
	ValidTemperatureModes = []string{"HEAT", "COOL", "AUTO"}
	ValidDeviceModes      = []string{"HEAT", "COOL", "AUTO", "AWAY", "OTHER"}
	ValidErrorInfoCodes   = []string{"ThermostatIsOff"}
	ValidTimeUnits        = []string{"MINUTE", "HOUR", "DAY"}
)

// Required key sets.
var (
	RequiredHeaderKeys    = []string{"namespace", "name", "payloadVersion", "messageId"}
	RequiredResponseKeys  = []string{"header", "payload"}
	RequiredApplianceKeys = []string{
		"applianceId",
		"manufacturerName",
		"modelName",
		"version",
		"friendlyName",
		"friendlyDescription",
		"isReachable",
		"actions",
		"additionalApplianceDetails",
	}
)

type nameSet map[string]struct{}

func newNameSet(groups ...[]string) nameSet {
	s := make(nameSet)
	for _, group := range groups {
		for _, name := range group {
			s[name] = struct{}{}
		}
	}
	return s
}

func (s nameSet) contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Membership sets built once at startup.
var (
	requestNames         = newNameSet(DiscoveryRequestNames, ControlRequestNames, SystemRequestNames)
	discoveryRequests    = newNameSet(DiscoveryRequestNames)
	controlRequests      = newNameSet(ControlRequestNames)
	systemRequests       = newNameSet(SystemRequestNames)
	discoveryResponses   = newNameSet(DiscoveryResponseNames)
	controlConfirmations = newNameSet(ControlConfirmationNames)
	controlErrors        = newNameSet(ControlErrorResponseNames)
	systemResponses      = newNameSet(SystemResponseNames)
	nonEmptyPayloadNames = newNameSet(NonEmptyPayloadResponseNames)
	validActionSet       = newNameSet(ValidActions)
	temperatureModeSet   = newNameSet(ValidTemperatureModes)
	deviceModeSet        = newNameSet(ValidDeviceModes)
	errorInfoCodeSet     = newNameSet(ValidErrorInfoCodes)
	timeUnitSet          = newNameSet(ValidTimeUnits)
)

// IsRequestName reports whether name is any known request name.
func IsRequestName(name string) bool { return requestNames.contains(name) }

// IsDiscoveryRequest reports whether name is a discovery request name.
func IsDiscoveryRequest(name string) bool { return discoveryRequests.contains(name) }

// IsControlRequest reports whether name is a control request name.
func IsControlRequest(name string) bool { return controlRequests.contains(name) }

// IsSystemRequest reports whether name is a system request name.
func IsSystemRequest(name string) bool { return systemRequests.contains(name) }

// IsDiscoveryResponse reports whether name is a discovery response name.
func IsDiscoveryResponse(name string) bool { return discoveryResponses.contains(name) }

// IsControlConfirmation reports whether name is a control confirmation name.
func IsControlConfirmation(name string) bool { return controlConfirmations.contains(name) }

// IsControlErrorResponse reports whether name is a control error outcome.
func IsControlErrorResponse(name string) bool { return controlErrors.contains(name) }

// IsSystemResponse reports whether name is a system response name.
func IsSystemResponse(name string) bool { return systemResponses.contains(name) }

// RequiresNonEmptyPayload reports whether the response name must carry a
// populated payload. Names not on the list must carry an empty payload.
func RequiresNonEmptyPayload(name string) bool { return nonEmptyPayloadNames.contains(name) }

// IsValidAction reports whether action is in the fixed action enumeration.
func IsValidAction(action string) bool { return validActionSet.contains(action) }

// IsValidTemperatureMode reports whether mode is HEAT, COOL or AUTO.
func IsValidTemperatureMode(mode string) bool { return temperatureModeSet.contains(mode) }

// IsValidDeviceMode reports whether mode is a known current-device mode.
func IsValidDeviceMode(mode string) bool { return deviceModeSet.contains(mode) }

// IsValidErrorInfoCode reports whether code is an allowed errorInfo code.
func IsValidErrorInfoCode(code string) bool { return errorInfoCodeSet.contains(code) }

// IsValidTimeUnit reports whether unit is MINUTE, HOUR or DAY.
func IsValidTimeUnit(unit string) bool { return timeUnitSet.contains(unit) }

// ConfirmationNameFor returns the confirmation name paired to a control
// request name (Request suffix replaced by Confirmation).
func ConfirmationNameFor(requestName string) string {
	return replaceRequestSuffix(requestName, "Confirmation")
}

// ResponseNameFor returns the response name paired to a discovery or system
// request name (Request suffix replaced by Response).
func ResponseNameFor(requestName string) string {
	return replaceRequestSuffix(requestName, "Response")
}

func replaceRequestSuffix(requestName, suffix string) string {
	return strings.Replace(requestName, "Request", suffix, 1)
}
