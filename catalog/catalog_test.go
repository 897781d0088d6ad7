package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
	"github.com/hyandell/alexa-smarthome-validation/schema"
)

func TestSampleAppliances(t *testing.T) {
	appliances := SampleAppliances()

	t.Run("catalog order is fixed", func(t *testing.T) {
		require.Len(t, appliances, 7)
		assert.Equal(t, "switch-001", appliances[0].ApplianceID)
		assert.Equal(t, "ThermostatCool-001", appliances[6].ApplianceID)
	})

	t.Run("only the unreachable switch reports unreachable", func(t *testing.T) {
		for _, appliance := range appliances {
			if appliance.ApplianceID == "switch-unreachable-001" {
				assert.False(t, appliance.IsReachable)
			} else {
				assert.True(t, appliance.IsReachable, appliance.ApplianceID)
			}
		}
	})

	t.Run("thermostats advertise temperature actions only", func(t *testing.T) {
		for _, appliance := range appliances {
			if appliance.ModelName == "Thermostat" {
				assert.Equal(t, []string{
					"setTargetTemperature",
					"incrementTargetTemperature",
					"decrementTargetTemperature",
				}, appliance.Actions)
			}
		}
	})
}

func TestErrorAppliances(t *testing.T) {
	appliances := ErrorAppliances()

	t.Run("one appliance per control error response name", func(t *testing.T) {
		require.Len(t, appliances, len(contracts.ControlErrorResponseNames))
		for i, errorName := range contracts.ControlErrorResponseNames {
			assert.Equal(t, errorName+"-001", appliances[i].ApplianceID)
			assert.Equal(t, errorName, appliances[i].FriendlyDescription)
		}
	})

	t.Run("friendly names count up from Device 50", func(t *testing.T) {
		assert.Equal(t, "Device 50", appliances[0].FriendlyName)
		assert.Equal(t, "Device 51", appliances[1].FriendlyName)
	})

	t.Run("the out-of-range appliance is a thermostat", func(t *testing.T) {
		for _, appliance := range appliances {
			if appliance.ApplianceID == "ValueOutOfRangeError-001" {
				assert.Equal(t, "Thermostat", appliance.ModelName)
				assert.Contains(t, appliance.Actions, "setTargetTemperature")
				return
			}
		}
		t.Fatal("ValueOutOfRangeError-001 not found")
	})
}

func TestIsErrorAppliance(t *testing.T) {
	t.Run("recognizes simulated error ids", func(t *testing.T) {
		assert.True(t, IsErrorAppliance("TargetOfflineError-001"))
		assert.True(t, IsErrorAppliance("RateLimitExceededError-001"))
		assert.False(t, IsErrorAppliance("switch-001"))
		assert.False(t, IsErrorAppliance("TargetOfflineError"))
	})

	t.Run("maps ids back to their error name", func(t *testing.T) {
		assert.Equal(t, "TargetOfflineError", ErrorNameFor("TargetOfflineError-001"))
		assert.Equal(t, "", ErrorNameFor("switch-001"))
	})
}

func TestCatalogValidatesAsDiscoveryListing(t *testing.T) {
	appliances := AllAppliances()
	discovered := make([]interface{}, len(appliances))
	for i, appliance := range appliances {
		discovered[i] = appliance.Tree()
	}

	request := contracts.NewMessage(
		contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest", "abc-1"),
		map[string]interface{}{},
	)
	response := contracts.NewMessage(
		contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesResponse", "abc-1"),
		map[string]interface{}{"discoveredAppliances": discovered},
	)

	validator := schema.NewResponseValidator()
	assert.NoError(t, validator.Validate(context.Background(), request, response))
}
