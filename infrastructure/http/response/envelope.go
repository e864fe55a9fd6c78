package response

import (
	"encoding/json"
	"net/http"

	apperror "github.com/vendorops/insights/domain/error"
)

type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, status bool, message string, data interface{}) {
	write(w, statusCode, Envelope{Status: status, Message: message, Data: data})
}

func write(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, true, message, data)
}

// AppError writes err through the error catalog so the status and code
// always agree with FromDomain.
func AppError(w http.ResponseWriter, err error) {
	appErr := apperror.FromDomain(err)
	var data interface{}
	if appErr.Details != "" {
		data = map[string]string{"details": appErr.Details}
	}
	write(w, apperror.GetHTTPStatusCode(appErr), Envelope{
		Status:  false,
		Message: appErr.Message,
		Code:    string(appErr.Code),
		Data:    data,
	})
}

// ValidationFailed reports field level problems with a request body or query.
func ValidationFailed(w http.ResponseWriter, errs interface{}) {
	write(w, http.StatusBadRequest, Envelope{
		Status:  false,
		Message: "Invalid request",
		Code:    string(apperror.ErrCodeInvalidRequest),
		Data:    errs,
	})
}

func Unauthorized(w http.ResponseWriter, details string) {
	AppError(w, apperror.ErrUnauthorized(details))
}
