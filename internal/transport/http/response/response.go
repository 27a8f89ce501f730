package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/logger"
	appCtx "github.com/baechuer/vidshare/internal/pkg/context"
)

// Error codes produced by the HTTP layer itself, outside domain.ErrCode.
const (
	CodeUnauthenticated = "unauthenticated"
	CodeRateLimited     = "rate_limited"
)

// Envelope is the success body:
// {"statusCode":200,"data":...,"message":"success","success":true}
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorBody is the failure body. data is always null.
type ErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Data       any               `json:"data"`
	Message    string            `json:"message"`
	Success    bool              `json:"success"`
	Code       string            `json:"code"`
	Meta       map[string]string `json:"meta,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Data(w http.ResponseWriter, status int, payload any) {
	DataMsg(w, status, payload, "success")
}

func DataMsg(w http.ResponseWriter, status int, payload any, message string) {
	JSON(w, status, Envelope{StatusCode: status, Data: payload, Message: message, Success: true})
}

func Fail(w http.ResponseWriter, status int, code, message string, meta map[string]string, requestID string) {
	JSON(w, status, ErrorBody{
		StatusCode: status,
		Message:    message,
		Code:       code,
		Meta:       meta,
		RequestID:  requestID,
	})
}

// Err renders err. AppErrors keep their message; anything else is logged and
// rendered as a generic internal error.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestID(r)

	var ae *domain.AppError
	if err != nil && errors.As(err, &ae) {
		status := statusFromCode(ae.Code)
		if status >= http.StatusInternalServerError {
			logger.WithCtx(r.Context()).Error().Err(err).Msg("internal error")
			Fail(w, status, string(domain.CodeInternal), "internal error", nil, requestID)
			return
		}
		Fail(w, status, string(ae.Code), ae.Message, ae.Meta, requestID)
		return
	}

	// keep details in logs only
	logger.WithCtx(r.Context()).Error().Err(err).Msg("unhandled error")
	Fail(w, http.StatusInternalServerError, string(domain.CodeInternal), "internal error", nil, requestID)
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUnauthorized:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RequestID prefers the id set by the request-id middleware and falls back to the header.
func RequestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := appCtx.GetRequestID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-Id")
}
