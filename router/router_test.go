package router

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

func discoveryRequest() contracts.Message {
	return contracts.NewMessage(
		contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest", "abc-1"),
		map[string]interface{}{"accessToken": "sample-access-token"},
	)
}

func controlRequestFor(requestName, applianceID string, payload map[string]interface{}) contracts.Message {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["appliance"] = map[string]interface{}{
		"applianceId": applianceID,
	}
	return contracts.NewMessage(
		contracts.NewHeader(contracts.NamespaceControl, requestName, "abc-1"),
		payload,
	)
}

func temperatureRequestPayload(field string, value float64) map[string]interface{} {
	return map[string]interface{}{
		field: map[string]interface{}{"value": value},
	}
}

func TestRouteDiscovery(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	response, err := router.Route(ctx, discoveryRequest())

	require.NoError(t, err)
	assert.Equal(t, "DiscoverAppliancesResponse", response.Name())
	assert.Equal(t, contracts.NamespaceDiscovery, response.Namespace())
	assert.Equal(t, "abc-1", response.MessageID())

	payload, ok := response.Payload()
	require.True(t, ok)
	appliances, ok := contracts.AsList(payload["discoveredAppliances"])
	require.True(t, ok)
	// 7 samples plus one simulated appliance per control error name.
	assert.Len(t, appliances, 7+len(contracts.ControlErrorResponseNames))
}

func TestRouteControlConfirmations(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	t.Run("switch requests confirm with an empty payload", func(t *testing.T) {
		response, err := router.Route(ctx, controlRequestFor("TurnOnRequest", "switch-001", nil))

		require.NoError(t, err)
		assert.Equal(t, "TurnOnConfirmation", response.Name())

		payload, ok := response.Payload()
		require.True(t, ok)
		assert.Empty(t, payload)
	})

	t.Run("dimmer percentage requests confirm with an empty payload", func(t *testing.T) {
		response, err := router.Route(ctx, controlRequestFor("SetPercentageRequest", "dimmer-001", map[string]interface{}{
			"percentageState": map[string]interface{}{"value": 50.0},
		}))

		require.NoError(t, err)
		assert.Equal(t, "SetPercentageConfirmation", response.Name())
	})

	t.Run("the offline sample appliance reports TargetOfflineError", func(t *testing.T) {
		response, err := router.Route(ctx, controlRequestFor("TurnOnRequest", "sample-5", nil))

		require.NoError(t, err)
		assert.Equal(t, "TargetOfflineError", response.Name())

		payload, ok := response.Payload()
		require.True(t, ok)
		assert.Empty(t, payload)
	})
}

func TestRouteThermostats(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	t.Run("set target temperature confirms with the thermostat mode", func(t *testing.T) {
		request := controlRequestFor("SetTargetTemperatureRequest", "ThermostatHeat-001",
			temperatureRequestPayload("targetTemperature", 24.0))

		response, err := router.Route(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "SetTargetTemperatureConfirmation", response.Name())

		payload, _ := response.Payload()
		target, _ := contracts.AsMap(payload["targetTemperature"])
		assert.Equal(t, 24.0, target["value"])
		mode, _ := contracts.AsMap(payload["temperatureMode"])
		assert.Equal(t, "HEAT", mode["value"])
	})

	t.Run("increment adds the delta to the previous temperature", func(t *testing.T) {
		request := controlRequestFor("IncrementTargetTemperatureRequest", "ThermostatAuto-001",
			temperatureRequestPayload("deltaTemperature", 2.0))

		response, err := router.Route(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "IncrementTargetTemperatureConfirmation", response.Name())

		payload, _ := response.Payload()
		target, _ := contracts.AsMap(payload["targetTemperature"])
		assert.Equal(t, 23.0, target["value"])

		previousState, _ := contracts.AsMap(payload["previousState"])
		previousTarget, _ := contracts.AsMap(previousState["targetTemperature"])
		assert.Equal(t, 21.0, previousTarget["value"])
	})

	t.Run("out of range targets become ValueOutOfRangeError", func(t *testing.T) {
		request := controlRequestFor("SetTargetTemperatureRequest", "ThermostatCool-001",
			temperatureRequestPayload("targetTemperature", 80.0))

		response, err := router.Route(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "ValueOutOfRangeError", response.Name())

		payload, _ := response.Payload()
		assert.Equal(t, 5.0, payload["minimumValue"])
		assert.Equal(t, 30.0, payload["maximumValue"])
	})

	t.Run("non-temperature requests become UnexpectedInformationReceivedError", func(t *testing.T) {
		request := controlRequestFor("TurnOnRequest", "ThermostatAuto-001", nil)

		response, err := router.Route(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "UnexpectedInformationReceivedError", response.Name())

		payload, _ := response.Payload()
		assert.Equal(t, "request.name: TurnOnRequest", payload["faultingParameter"])
	})

	t.Run("missing temperature value is rejected before routing", func(t *testing.T) {
		request := controlRequestFor("SetTargetTemperatureRequest", "ThermostatAuto-001", nil)

		_, err := router.Route(ctx, request)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "payload.targetTemperature.value is missing")
	})
}

func TestRouteErrorAppliances(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	// Every simulated error appliance must produce a response that passes
	// validation, which exercises each documented error payload shape.
	for _, errorName := range contracts.ControlErrorResponseNames {
		t.Run(errorName, func(t *testing.T) {
			request := controlRequestFor("TurnOnRequest", errorName+"-001", nil)

			response, err := router.Route(ctx, request)

			require.NoError(t, err)
			assert.Equal(t, errorName, response.Name())
		})
	}
}

func TestRouteHealthCheck(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	request := contracts.NewMessage(
		contracts.NewHeader(contracts.NamespaceSystem, "HealthCheckRequest", "abc-1"),
		map[string]interface{}{},
	)

	response, err := router.Route(ctx, request)

	require.NoError(t, err)
	assert.Equal(t, "HealthCheckResponse", response.Name())

	payload, ok := response.Payload()
	require.True(t, ok)
	assert.NotEmpty(t, payload["description"])
	assert.Equal(t, true, payload["isHealthy"])
}

func TestRouteUnknownNamespace(t *testing.T) {
	router := NewRouter()
	ctx := context.Background()

	request := contracts.NewMessage(
		contracts.NewHeader("Alexa.ConnectedHome.Unknown", "DiscoverAppliancesRequest", "abc-1"),
		map[string]interface{}{},
	)

	_, err := router.Route(ctx, request)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespace is invalid")
}

func TestDeadlineEnforcement(t *testing.T) {
	t.Run("oversized budget is rejected when enforcement is on", func(t *testing.T) {
		router := NewRouter(WithDeadlineCheck())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := router.Route(ctx, discoveryRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "processing budget must be 7 seconds or less")
	})

	t.Run("a compliant budget passes", func(t *testing.T) {
		router := NewRouter(WithDeadlineCheck())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := router.Route(ctx, discoveryRequest())

		assert.NoError(t, err)
	})
}
