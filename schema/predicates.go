package schema

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Restricted character classes used by header and descriptor rules.
var (
	alphanumericPattern       = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
	alphanumericSpacesPattern = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	applianceIDPattern        = regexp.MustCompile(`^[a-zA-Z0-9_\-=#;:?@&]*$`)
	messageIDPattern          = regexp.MustCompile(`^[a-zA-Z0-9\-]*$`)
)

// isNumber reports whether the value parses as a number. JSON numbers arrive
// as float64; the check is deliberately permissive and also accepts numeric
// strings and json.Number values.
func isNumber(value interface{}) bool {
	switch n := value.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	default:
		return false
	}
}

// isDigits reports whether the value is a string of decimal digits only,
// with no sign and no decimal point.
func isDigits(value interface{}) bool {
	s, ok := value.(string)
	if !ok || s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isEmptyString reports whether the value is a blank string. Non-string
// values count as empty so the first rule touching the field rejects them.
func isEmptyString(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return true
	}
	return strings.TrimSpace(s) == ""
}

func isAlphanumeric(value interface{}) bool {
	s, ok := value.(string)
	return ok && alphanumericPattern.MatchString(s)
}

func isAlphanumericWithSpaces(value interface{}) bool {
	s, ok := value.(string)
	return ok && alphanumericSpacesPattern.MatchString(s)
}

func isValidApplianceID(s string) bool {
	return applianceIDPattern.MatchString(s)
}

func isValidMessageID(s string) bool {
	return messageIDPattern.MatchString(s)
}

// stringValue extracts a string field; ok is false for non-string values.
func stringValue(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// serializedSize returns the JSON-encoded size of a value in bytes.
func serializedSize(value interface{}) int {
	data, err := json.Marshal(value)
	if err != nil {
		return 0
	}
	return len(data)
}
