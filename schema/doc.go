// Package schema provides response validation for the smart home protocol.
//
// The validation engine takes an inbound request tree and a candidate response
// tree and confirms every structural and semantic rule for the declared
// request/response name pairing: header policy (namespace and name agreement,
// payload version, message id constraints), and the payload rule set keyed by
// response name (discovery descriptor rules, control confirmation and error
// shapes, system health payload).
//
// Validation is fail-fast. The first violated rule aborts the call with a
// *contracts.ValidationError describing the subject, the rule and a snapshot
// of the offending data. A validation call is a pure function of its two
// input trees; running it twice on the same inputs yields the same outcome.
//
// Basic usage:
//
//	validator := schema.NewResponseValidator()
//	if err := validator.Validate(ctx, request, response); err != nil {
//	    // do not release the response to the caller
//	    return err
//	}
package schema
