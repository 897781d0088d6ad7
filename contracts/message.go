package contracts

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Message is an untyped protocol message tree. Both requests and responses
// share this shape: a header mapping plus a free-form payload mapping.
type Message map[string]interface{}

// AsMap normalizes a tree node to a plain map. Nodes decoded from JSON arrive
// as map[string]interface{}, nodes built in code may be Message values.
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Message:
		return m, true
	default:
		return nil, false
	}
}

// AsList normalizes a tree node to a plain slice.
func AsList(v interface{}) ([]interface{}, bool) {
	l, ok := v.([]interface{})
	return l, ok
}

// Header returns the header mapping, if present.
func (m Message) Header() (map[string]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	return AsMap(m["header"])
}

// Payload returns the payload mapping. The second return is false when the
// payload key is absent or nil; an empty mapping returns true.
func (m Message) Payload() (map[string]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	return AsMap(m["payload"])
}

// Namespace returns header.namespace, or "" when absent.
func (m Message) Namespace() string {
	return m.headerString("namespace")
}

// Name returns header.name, or "" when absent.
func (m Message) Name() string {
	return m.headerString("name")
}

// MessageID returns header.messageId, or "" when absent.
func (m Message) MessageID() string {
	return m.headerString("messageId")
}

func (m Message) headerString(key string) string {
	header, ok := m.Header()
	if !ok {
		return ""
	}
	s, _ := header[key].(string)
	return s
}

// NewHeader builds the fixed four-field response header. An empty messageID
// is replaced with a freshly generated one so fabricated messages always
// carry a correlation id.
func NewHeader(namespace, name, messageID string) map[string]interface{} {
	if messageID == "" {
		messageID = NewMessageID()
	}
	return map[string]interface{}{
		"namespace":      namespace,
		"name":           name,
		"payloadVersion": PayloadVersion,
		"messageId":      messageID,
	}
}

// NewMessage wraps a header and payload into a message tree.
func NewMessage(header, payload map[string]interface{}) Message {
	return Message{
		"header":  header,
		"payload": payload,
	}
}

// NewMessageID generates a fresh correlation id.
func NewMessageID() string {
	return uuid.New().String()
}

// FromJSON decodes a message tree from its JSON encoding.
func FromJSON(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ToJSON encodes the message tree with indentation for display.
func (m Message) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
