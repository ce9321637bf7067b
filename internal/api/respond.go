package api

import (
	"encoding/json"
	"net/http"

	"github.com/tickerlens/tickerlens/pkg/errors"
)

// errorBody is the uniform error response shape. The optional fields only
// appear on the branches that set them.
type errorBody struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Code         string `json:"code,omitempty"`
	ProviderCode *int   `json:"provider_code,omitempty"`
	RawResponse  string `json:"raw_response,omitempty"`
}

func newErrorBody(message string) errorBody {
	return errorBody{Status: "error", Message: message}
}

// rejectionBody builds the 400 body for an upstream rejection, carrying the
// provider's own message and numeric code when they are available.
func rejectionBody(err error) errorBody {
	body := newErrorBody("Unknown error from data provider")

	if rejection, ok := errors.AsUpstreamRejection(err); ok {
		if rejection.Message != "" {
			body.Message = rejection.Message
		}

		code := rejection.ProviderCode
		body.ProviderCode = &code
	}

	return body
}

// causeMessage returns the most specific human-readable text for err: the
// underlying cause when one exists, otherwise the message without the
// numeric code prefix Error() adds.
func causeMessage(err error) string {
	var e *errors.Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Cause.Error()
		}

		return e.Message
	}

	return err.Error()
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
