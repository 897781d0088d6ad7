package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
	"github.com/hyandell/alexa-smarthome-validation/schema"
)

// Handler produces a response for a request.
type Handler interface {
	Handle(ctx context.Context, request contracts.Message) (contracts.Message, error)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, request contracts.Message) (contracts.Message, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, request contracts.Message) (contracts.Message, error) {
	return f(ctx, request)
}

// Interceptor processes requests around the final handler.
type Interceptor interface {
	Intercept(ctx context.Context, request contracts.Message, next Handler) (contracts.Message, error)
	Name() string
}

// Chain manages a chain of interceptors.
type Chain struct {
	interceptors []Interceptor
}

// NewChain creates an empty interceptor chain.
func NewChain() *Chain {
	return &Chain{interceptors: make([]Interceptor, 0)}
}

// Add appends an interceptor to the chain.
func (c *Chain) Add(interceptor Interceptor) *Chain {
	c.interceptors = append(c.interceptors, interceptor)
	return c
}

// Execute runs the chain around the final handler.
func (c *Chain) Execute(ctx context.Context, request contracts.Message, finalHandler Handler) (contracts.Message, error) {
	handler := finalHandler
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		interceptor := c.interceptors[i]
		next := handler
		handler = HandlerFunc(func(ctx context.Context, request contracts.Message) (contracts.Message, error) {
			return interceptor.Intercept(ctx, request, next)
		})
	}
	return handler.Handle(ctx, request)
}

// LoggingInterceptor logs request and response headers and payloads.
type LoggingInterceptor struct {
	logger *slog.Logger
}

// NewLoggingInterceptor creates a new logging interceptor.
func NewLoggingInterceptor(logger *slog.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingInterceptor{logger: logger}
}

// Intercept implements Interceptor.
func (i *LoggingInterceptor) Intercept(ctx context.Context, request contracts.Message, next Handler) (contracts.Message, error) {
	start := time.Now()

	requestHeader, _ := request.Header()
	requestPayload, _ := request.Payload()
	i.logger.InfoContext(ctx, "handling request",
		"header", requestHeader,
		"payload", requestPayload,
	)

	response, err := next.Handle(ctx, request)
	duration := time.Since(start)

	if err != nil {
		i.logger.ErrorContext(ctx, "request failed",
			"requestName", request.Name(),
			"duration", duration,
			"error", err,
		)
		return nil, err
	}

	responseHeader, _ := response.Header()
	responsePayload, _ := response.Payload()
	i.logger.InfoContext(ctx, "returning response",
		"header", responseHeader,
		"payload", responsePayload,
		"duration", duration,
	)
	return response, nil
}

// Name implements Interceptor.
func (i *LoggingInterceptor) Name() string {
	return "LoggingInterceptor"
}

// DeadlineInterceptor rejects invocations whose configured processing budget
// exceeds the allowed maximum.
type DeadlineInterceptor struct{}

// NewDeadlineInterceptor creates a new deadline interceptor.
func NewDeadlineInterceptor() *DeadlineInterceptor {
	return &DeadlineInterceptor{}
}

// Intercept implements Interceptor.
func (i *DeadlineInterceptor) Intercept(ctx context.Context, request contracts.Message, next Handler) (contracts.Message, error) {
	if err := schema.ValidateDeadline(ctx); err != nil {
		return nil, err
	}
	return next.Handle(ctx, request)
}

// Name implements Interceptor.
func (i *DeadlineInterceptor) Name() string {
	return "DeadlineInterceptor"
}

// ValidationInterceptor validates the fabricated response before it is
// released to the caller.
type ValidationInterceptor struct {
	validator *schema.ResponseValidator
}

// NewValidationInterceptor creates a new validation interceptor.
func NewValidationInterceptor(validator *schema.ResponseValidator) *ValidationInterceptor {
	if validator == nil {
		validator = schema.NewResponseValidator()
	}
	return &ValidationInterceptor{validator: validator}
}

// Intercept implements Interceptor.
func (i *ValidationInterceptor) Intercept(ctx context.Context, request contracts.Message, next Handler) (contracts.Message, error) {
	response, err := next.Handle(ctx, request)
	if err != nil {
		return nil, err
	}
	if err := i.validator.Validate(ctx, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Name implements Interceptor.
func (i *ValidationInterceptor) Name() string {
	return "ValidationInterceptor"
}
