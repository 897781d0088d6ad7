// Package contracts provides the core message types and protocol constants for the
// smart home request/response adapter.
//
// This package defines the envelope that flows through the system:
//   - Message: an untyped nested message tree (header + payload)
//   - Header builders and accessors for the fixed four-field header
//   - The protocol name sets (request names, response names, actions, modes)
//   - ValidationError: the single error kind produced by response validation
//
// Messages are deliberately untyped maps rather than structs. The payload shape
// varies per response name and the validation engine in the schema package is
// the authority on which fields are required for which name.
package contracts
