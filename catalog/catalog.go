package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// SampleManufacturer is the manufacturer name on every catalog entry.
const SampleManufacturer = "Sample Manufacturer"

// errorApplianceSuffix distinguishes simulated error appliance ids from the
// error response name they trigger.
const errorApplianceSuffix = "-001"

// Appliance describes one controllable device for discovery purposes.
type Appliance struct {
	ApplianceID         string            `json:"applianceId"`
	ManufacturerName    string            `json:"manufacturerName"`
	ModelName           string            `json:"modelName"`
	Version             string            `json:"version"`
	FriendlyName        string            `json:"friendlyName"`
	FriendlyDescription string            `json:"friendlyDescription"`
	IsReachable         bool              `json:"isReachable"`
	Actions             []string          `json:"actions"`
	AdditionalDetails   map[string]string `json:"additionalApplianceDetails"`
}

// Tree converts the descriptor into the untyped payload representation the
// validation engine operates on.
func (a Appliance) Tree() map[string]interface{} {
	actions := make([]interface{}, len(a.Actions))
	for i, action := range a.Actions {
		actions[i] = action
	}
	details := make(map[string]interface{}, len(a.AdditionalDetails))
	for key, value := range a.AdditionalDetails {
		details[key] = value
	}
	return map[string]interface{}{
		"applianceId":                a.ApplianceID,
		"manufacturerName":           a.ManufacturerName,
		"modelName":                  a.ModelName,
		"version":                    a.Version,
		"friendlyName":               a.FriendlyName,
		"friendlyDescription":        a.FriendlyDescription,
		"isReachable":                a.IsReachable,
		"actions":                    actions,
		"additionalApplianceDetails": details,
	}
}

var (
	switchActions     = []string{"turnOn", "turnOff"}
	dimmerActions     = []string{"turnOn", "turnOff", "setPercentage", "incrementPercentage", "decrementPercentage"}
	thermostatActions = []string{"setTargetTemperature", "incrementTargetTemperature", "decrementTargetTemperature"}
)

// SampleAppliances returns the fixed ordered catalog of sample devices.
func SampleAppliances() []Appliance {
	return []Appliance{
		{
			ApplianceID:         "switch-001",
			ManufacturerName:    SampleManufacturer,
			ModelName:           "Switch",
			Version:             "1",
			FriendlyName:        "Sample Switch",
			FriendlyDescription: "Switch by " + SampleManufacturer,
			IsReachable:         true,
			Actions:             switchActions,
			AdditionalDetails: map[string]string{
				"extraDetail1": "This is an on/off switch that is online and reachable",
			},
		},
		{
			ApplianceID:         "dimmer-001",
			ManufacturerName:    SampleManufacturer,
			ModelName:           "Dimmer",
			Version:             "1",
			FriendlyName:        "Sample Dimmer",
			FriendlyDescription: "Dimmer by " + SampleManufacturer,
			IsReachable:         true,
			Actions:             dimmerActions,
			AdditionalDetails: map[string]string{
				"extraDetail1": "This is a dimmer that is online and reachable",
			},
		},
		{
			ApplianceID:         "fan-001",
			ManufacturerName:    SampleManufacturer,
			ModelName:           "Fan",
			Version:             "1",
			FriendlyName:        "Sample Fan",
			FriendlyDescription: "Fan by " + SampleManufacturer,
			IsReachable:         true,
			Actions:             dimmerActions,
			AdditionalDetails: map[string]string{
				"extraDetail1": "This is a fan that is online and reachable",
			},
		},
		{
			ApplianceID:         "switch-unreachable-001",
			ManufacturerName:    SampleManufacturer,
			ModelName:           "Switch",
			Version:             "1",
			FriendlyName:        "Sample Switch Unreachable",
			FriendlyDescription: "Switch by " + SampleManufacturer,
			IsReachable:         false,
			Actions:             switchActions,
			AdditionalDetails: map[string]string{
				"extraDetail1": "This is an on/off switch that is not reachable and should show as offline",
			},
		},
		thermostatAppliance("ThermostatAuto-001", "Amazon Basement", "Thermostat in AUTO mode and reachable"),
		thermostatAppliance("ThermostatHeat-001", "Amazon Heater", "Thermostat in HEAT mode and reachable"),
		thermostatAppliance("ThermostatCool-001", "Amazon Cooler", "Thermostat in COOL mode and reachable"),
	}
}

func thermostatAppliance(id, friendlyName, description string) Appliance {
	return Appliance{
		ApplianceID:         id,
		ManufacturerName:    SampleManufacturer,
		ModelName:           "Thermostat",
		Version:             "1",
		FriendlyName:        friendlyName,
		FriendlyDescription: description,
		IsReachable:         true,
		Actions:             thermostatActions,
		AdditionalDetails:   map[string]string{},
	}
}

// ErrorAppliances returns one simulated appliance per control error response
// name. Controlling one of them makes the router fabricate that error.
func ErrorAppliances() []Appliance {
	appliances := make([]Appliance, 0, len(contracts.ControlErrorResponseNames))
	deviceNumber := 50

	for _, errorName := range contracts.ControlErrorResponseNames {
		appliance := Appliance{
			ApplianceID:         errorName + errorApplianceSuffix,
			ManufacturerName:    SampleManufacturer,
			ModelName:           "Switch",
			Version:             "1",
			FriendlyName:        "Device " + strconv.Itoa(deviceNumber),
			FriendlyDescription: errorName,
			IsReachable:         true,
			Actions:             switchActions,
			AdditionalDetails:   map[string]string{},
		}
		// The out-of-range scenario only makes sense on a thermostat.
		if errorName == "ValueOutOfRangeError" {
			appliance.ModelName = "Thermostat"
			appliance.Actions = thermostatActions
		}
		appliances = append(appliances, appliance)
		deviceNumber++
	}
	return appliances
}

// AllAppliances returns the full discovery listing: samples followed by the
// simulated error appliances.
func AllAppliances() []Appliance {
	return append(SampleAppliances(), ErrorAppliances()...)
}

var (
	errorApplianceOnce sync.Once
	errorApplianceIDs  map[string]struct{}
)

// IsErrorAppliance reports whether the id belongs to a simulated error
// appliance. The lookup set is built once per process.
func IsErrorAppliance(applianceID string) bool {
	errorApplianceOnce.Do(func() {
		errorApplianceIDs = make(map[string]struct{}, len(contracts.ControlErrorResponseNames))
		for _, appliance := range ErrorAppliances() {
			errorApplianceIDs[appliance.ApplianceID] = struct{}{}
		}
	})
	_, ok := errorApplianceIDs[applianceID]
	return ok
}

// ErrorNameFor returns the control error response name a simulated error
// appliance id maps to, or "" for ordinary appliances.
func ErrorNameFor(applianceID string) string {
	if !IsErrorAppliance(applianceID) {
		return ""
	}
	return strings.TrimSuffix(applianceID, errorApplianceSuffix)
}
