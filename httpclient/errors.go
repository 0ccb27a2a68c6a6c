package httpclient

import (
	"encoding/json"
	"strconv"

	"github.com/kochabx/apikit/errors"
)

// RequestError is the single failure type returned by the client.
// Its Error() is the caller-facing message; Kind tells where it failed.
type RequestError = errors.Error

// messageFromBody extracts a non-empty string "message" from a JSON object.
func messageFromBody(body []byte) (string, bool) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	msg, ok := payload["message"].(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

func statusMessage(status int) string {
	return "HTTP error! status: " + strconv.Itoa(status)
}
