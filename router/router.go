package router

import (
	"context"
	"log/slog"

	"github.com/hyandell/alexa-smarthome-validation/catalog"
	"github.com/hyandell/alexa-smarthome-validation/contracts"
	"github.com/hyandell/alexa-smarthome-validation/health"
	"github.com/hyandell/alexa-smarthome-validation/schema"
)

// Router fabricates responses for inbound requests and validates them before
// release.
type Router struct {
	logger        *slog.Logger
	validator     *schema.ResponseValidator
	checkers      []health.Checker
	checkDeadline bool
	chain         *Chain
}

// RouterOption configures the Router.
type RouterOption func(*Router)

// WithRouterLogger sets the logger.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithValidator sets the response validator.
func WithValidator(validator *schema.ResponseValidator) RouterOption {
	return func(r *Router) {
		if validator != nil {
			r.validator = validator
		}
	}
}

// WithHealthCheckers sets the checkers behind the health check response.
func WithHealthCheckers(checkers ...health.Checker) RouterOption {
	return func(r *Router) {
		r.checkers = checkers
	}
}

// WithDeadlineCheck enables the processing-budget misconfiguration check on
// every invocation.
func WithDeadlineCheck() RouterOption {
	return func(r *Router) {
		r.checkDeadline = true
	}
}

// NewRouter creates a router with the default interceptor chain: logging,
// optional deadline check, and response validation.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		logger:    slog.Default(),
		validator: schema.NewResponseValidator(),
		checkers: []health.Checker{
			health.NewCatalogChecker(nil),
			health.NewRuntimeChecker(0),
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.chain = NewChain().Add(NewLoggingInterceptor(r.logger))
	if r.checkDeadline {
		r.chain.Add(NewDeadlineInterceptor())
	}
	r.chain.Add(NewValidationInterceptor(r.validator))
	return r
}

// Route builds and validates the response for a request. The returned
// message has passed every protocol rule for the request's category.
func (r *Router) Route(ctx context.Context, request contracts.Message) (contracts.Message, error) {
	return r.chain.Execute(ctx, request, HandlerFunc(r.dispatch))
}

func (r *Router) dispatch(ctx context.Context, request contracts.Message) (contracts.Message, error) {
	switch request.Namespace() {
	case contracts.NamespaceDiscovery:
		return r.handleDiscovery(request), nil
	case contracts.NamespaceControl:
		return r.handleControl(request)
	case contracts.NamespaceSystem:
		return r.handleHealthCheck(ctx, request), nil
	default:
		return nil, contracts.NewValidationError("Request", "request.header.namespace is invalid", request)
	}
}

// handleDiscovery answers with the full catalog listing.
func (r *Router) handleDiscovery(request contracts.Message) contracts.Message {
	appliances := catalog.AllAppliances()
	discovered := make([]interface{}, len(appliances))
	for i, appliance := range appliances {
		discovered[i] = appliance.Tree()
	}

	header := contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesResponse", request.MessageID())
	payload := map[string]interface{}{
		"discoveredAppliances": discovered,
	}
	return contracts.NewMessage(header, payload)
}

// handleHealthCheck runs the configured checkers and reports the summary.
func (r *Router) handleHealthCheck(ctx context.Context, request contracts.Message) contracts.Message {
	results := make([]health.CheckResult, 0, len(r.checkers))
	for _, checker := range r.checkers {
		results = append(results, checker.Check(ctx))
	}
	description, healthy := health.Summarize(results)

	header := contracts.NewHeader(contracts.NamespaceSystem, "HealthCheckResponse", request.MessageID())
	payload := map[string]interface{}{
		"description": description,
		"isHealthy":   healthy,
	}
	return contracts.NewMessage(header, payload)
}
