package apierrors

import (
	"fmt"

	"synergysphere/internal/translator"
)

// JsonErr represents the JSON structure for apierrors.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err represents the error with a code and message. Fields carries
// per-field validation messages.
type Err struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

// ValidationError generates a JsonErr whose fields map field names to
// translated message keys.
func ValidationError(code int, fields map[string]string, lang string) JsonErr {
	e := CreateError(code, MsgValidationFailed, lang)
	e.ErrDetails.Fields = make(map[string]string, len(fields))
	for field, key := range fields {
		e.ErrDetails.Fields[field] = GetTransErrorMsg(key, lang)
	}
	return e
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translator.Localize(msgKey, lang)
}
