package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// Test helpers shared by the schema tests.

func requestMessage(namespace, name string) contracts.Message {
	return contracts.NewMessage(
		contracts.NewHeader(namespace, name, "abc-1"),
		map[string]interface{}{},
	)
}

func responseMessage(namespace, name string, payload map[string]interface{}) contracts.Message {
	return contracts.NewMessage(
		contracts.NewHeader(namespace, name, "abc-1"),
		payload,
	)
}

func emptyDiscoveryResponse() contracts.Message {
	return responseMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesResponse", map[string]interface{}{
		"discoveredAppliances": []interface{}{},
	})
}

func TestValidateInputPresence(t *testing.T) {
	validator := NewResponseValidator()
	ctx := context.Background()

	t.Run("Validate fails when request is nil", func(t *testing.T) {
		err := validator.Validate(ctx, nil, emptyDiscoveryResponse())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request is missing")
	})

	t.Run("Validate fails when request is empty", func(t *testing.T) {
		err := validator.Validate(ctx, contracts.Message{}, emptyDiscoveryResponse())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request must not be empty")
	})

	t.Run("Validate fails when request is not a mapping", func(t *testing.T) {
		err := validator.Validate(ctx, "not a mapping", emptyDiscoveryResponse())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request must be a mapping")
	})

	t.Run("Validate fails when request has no header namespace", func(t *testing.T) {
		request := contracts.Message{"payload": map[string]interface{}{}}

		err := validator.Validate(ctx, request, emptyDiscoveryResponse())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request is invalid")
	})

	t.Run("Validate fails when response is nil", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")

		err := validator.Validate(ctx, request, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "response is missing")
	})

	t.Run("Validate fails when response is empty", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")

		err := validator.Validate(ctx, request, map[string]interface{}{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "response must not be empty")
	})

	t.Run("Validate fails when response lacks a payload key", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")
		response := contracts.Message{
			"header": contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesResponse", "abc-1"),
		}

		err := validator.Validate(ctx, request, response)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "payload is missing")
	})

	t.Run("Validate fails when response lacks a header key", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")
		response := contracts.Message{
			"payload": map[string]interface{}{},
		}

		err := validator.Validate(ctx, request, response)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "header is missing")
	})
}

func TestValidateDispatch(t *testing.T) {
	validator := NewResponseValidator()
	ctx := context.Background()

	t.Run("Validate fails for unrecognized namespace", func(t *testing.T) {
		request := requestMessage("Alexa.ConnectedHome.Unknown", "DiscoverAppliancesRequest")

		err := validator.Validate(ctx, request, emptyDiscoveryResponse())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "namespace is invalid")
	})

	t.Run("Validate accepts a discovery response with an empty listing", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")

		err := validator.Validate(ctx, request, emptyDiscoveryResponse())

		assert.NoError(t, err)
	})

	t.Run("Validate accepts a control confirmation with an empty payload", func(t *testing.T) {
		request := controlRequest("TurnOnRequest")
		response := responseMessage(contracts.NamespaceControl, "TurnOnConfirmation", map[string]interface{}{})

		err := validator.Validate(ctx, request, response)

		assert.NoError(t, err)
	})

	t.Run("Validate accepts a healthy system response", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceSystem, "HealthCheckRequest")
		response := responseMessage(contracts.NamespaceSystem, "HealthCheckResponse", map[string]interface{}{
			"description": "The system is currently healthy",
			"isHealthy":   true,
		})

		err := validator.Validate(ctx, request, response)

		assert.NoError(t, err)
	})

	t.Run("Validate is idempotent on the same input pair", func(t *testing.T) {
		request := requestMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest")
		response := emptyDiscoveryResponse()

		first := validator.Validate(ctx, request, response)
		second := validator.Validate(ctx, request, response)

		assert.NoError(t, first)
		assert.NoError(t, second)

		badResponse := responseMessage(contracts.NamespaceDiscovery, "DiscoverAppliancesResponse", map[string]interface{}{})
		firstBad := validator.Validate(ctx, request, badResponse)
		secondBad := validator.Validate(ctx, request, badResponse)

		require.Error(t, firstBad)
		require.Error(t, secondBad)
		assert.Equal(t, firstBad.Error(), secondBad.Error())
	})

	t.Run("Validate returns a ValidationError value", func(t *testing.T) {
		request := requestMessage("Alexa.ConnectedHome.Unknown", "DiscoverAppliancesRequest")

		err := validator.Validate(ctx, request, emptyDiscoveryResponse())

		var violation *contracts.ValidationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "Request", violation.Subject)
	})
}
