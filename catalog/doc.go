// Package catalog provides the static reference data the router draws on: a
// fixed list of sample appliances plus one simulated error appliance per
// control error response name. Targeting an error appliance makes the router
// fabricate that error outcome, which is how every error payload shape can be
// exercised end to end without real devices.
package catalog
