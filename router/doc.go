// Package router builds the candidate response for an inbound smart home
// request and runs it through the validation engine before release.
//
// The router inspects the request's namespace and device id, fabricates the
// outbound message from the static catalog (discovery listings, control
// confirmations, simulated error outcomes, health reports), and passes the
// request/response pair through an interceptor chain. The validation
// interceptor is always last: a response that violates any protocol rule is
// never returned to the caller.
package router
