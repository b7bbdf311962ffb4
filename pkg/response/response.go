// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/internal/apperrors"
	"go.uber.org/zap"
)

// Envelope is the common response body. Only the populated keys are sent.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token,omitempty"`
	User    interface{} `json:"user,omitempty"`
	Admin   interface{} `json:"admin,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Stats   interface{} `json:"stats,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// Count is a helper so a zero count is still rendered.
func Count(n int) *int { return &n }

// fallbackBody is sent when an envelope cannot be encoded.
var fallbackBody = []byte(`{"success":false,"message":"Server Error"}` + "\n")

// JSON writes env with the given status code. The body is encoded before
// the header goes out, so an envelope that cannot be encoded becomes a 500
// instead of a truncated success.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(env); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(fallbackBody)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Renderer turns errors into envelopes. The underlying cause is attached as
// "stack" only outside production.
type Renderer struct {
	Log        *zap.Logger
	Production bool
}

// Error classifies err and writes the matching envelope. Internal failures
// are logged; expected ones are not.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.Classify(err)
	status := appErr.Kind.HTTPStatus()

	if appErr.Kind == apperrors.Internal && rd.Log != nil {
		rd.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	env := Envelope{Success: false, Message: appErr.Message, Errors: appErr.Errors}
	if !rd.Production && appErr.Err != nil {
		env.Stack = fmt.Sprintf("%+v", appErr.Err)
	}
	JSON(w, status, env)
}
