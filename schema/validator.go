package schema

import (
	"context"
	"log/slog"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// ResponseValidator validates candidate responses against the protocol rules
// before they are released to the caller.
type ResponseValidator struct {
	logger *slog.Logger
}

// ValidatorOption configures the response validator.
type ValidatorOption func(*ResponseValidator)

// WithLogger sets the logger used for validation outcomes.
func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *ResponseValidator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewResponseValidator creates a new response validator.
func NewResponseValidator(opts ...ValidatorOption) *ResponseValidator {
	v := &ResponseValidator{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks the candidate response against the rules for the request's
// declared namespace. It returns nil when every rule passes, otherwise the
// first violation as a *contracts.ValidationError.
func (v *ResponseValidator) Validate(ctx context.Context, request, response interface{}) error {
	requestMap, violation := requireMessageTree("Request", "request", request)
	if violation != nil {
		return v.fail(violation)
	}

	namespace, ok := headerField(requestMap, "namespace")
	if !ok {
		return v.fail(contracts.NewValidationError("Request", "request is invalid", request))
	}

	responseMap, violation := requireMessageTree("Response", "response", response)
	if violation != nil {
		return v.fail(violation)
	}

	for _, key := range contracts.RequiredResponseKeys {
		if _, exists := responseMap[key]; !exists {
			return v.fail(contracts.NewValidationError("Response", key+" is missing", response))
		}
	}

	var err error
	switch namespace {
	case contracts.NamespaceDiscovery:
		err = v.validateDiscoveryResponse(requestMap, responseMap)
	case contracts.NamespaceControl:
		err = v.validateControlResponse(requestMap, responseMap)
	case contracts.NamespaceSystem:
		err = v.validateSystemResponse(requestMap, responseMap)
	default:
		err = contracts.NewValidationError("Request", "request.header.namespace is invalid", request)
	}

	if err != nil {
		return v.fail(err)
	}

	v.logger.DebugContext(ctx, "response validated",
		"namespace", namespace,
		"responseName", messageName(responseMap),
	)
	return nil
}

func (v *ResponseValidator) fail(err error) error {
	v.logger.Debug("response validation failed", "error", err)
	return err
}

// requireMessageTree checks that a message is present, non-empty and a
// mapping, mirroring the top-level presence rules for both inputs.
func requireMessageTree(subject, label string, msg interface{}) (map[string]interface{}, *contracts.ValidationError) {
	if msg == nil {
		return nil, contracts.NewValidationError(subject, label+" is missing", msg)
	}
	m, ok := contracts.AsMap(msg)
	if !ok {
		return nil, contracts.NewValidationError(subject, label+" must be a mapping", msg)
	}
	if len(m) == 0 {
		return nil, contracts.NewValidationError(subject, label+" must not be empty", msg)
	}
	return m, nil
}

// headerField digs header.<key> out of a message tree.
func headerField(msg map[string]interface{}, key string) (string, bool) {
	header, ok := contracts.AsMap(msg["header"])
	if !ok {
		return "", false
	}
	value, ok := header[key].(string)
	return value, ok
}

func messageName(msg map[string]interface{}) string {
	name, _ := headerField(msg, "name")
	return name
}
