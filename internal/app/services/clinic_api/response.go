package clinic_api

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Error bodies larger than this are not inspected for a message.
const maxErrorBodySize = 64 << 10

// Envelope is the response body shape shared by the clinic API endpoints.
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// DecodeEnvelope reads one envelope from body.
func DecodeEnvelope[T any](body io.Reader) (*Envelope[T], error) {
	var envelope Envelope[T]
	err := json.NewDecoder(body).Decode(&envelope)
	if err != nil {
		return nil, err
	}
	return &envelope, nil
}

// ErrorMessage extracts the message of an error body, ignoring anything that
// is not JSON. Some endpoints report failures under "error" instead.
func ErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || !gjson.ValidBytes(raw) {
		return ""
	}
	if message := gjson.GetBytes(raw, "message"); message.Type == gjson.String {
		return message.String()
	}
	if message := gjson.GetBytes(raw, "error"); message.Type == gjson.String {
		return message.String()
	}
	return ""
}
