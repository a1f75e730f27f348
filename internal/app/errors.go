package app

import (
	"errors"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// Codes stables renvoyés dans CodedError et publiés sur le bus.
const (
	CodeNetwork    = "network_error"
	CodeHTTPStatus = "http_status"
	CodeIO         = "io_error"
	CodePlatform   = "unsupported_platform"
	CodeInternal   = "internal"
)

// CodedError permet aux adapters de renvoyer un code d'erreur stable
// (network_error, http_status = erreurs transport; io_error = erreurs fichier).
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

func NewCodedError(code, message string, err error) *CodedError {
	return &CodedError{Code: code, Message: message, Err: err}
}

// ErrorCode renvoie le code d'une CodedError dans la chaîne, ou CodeInternal.
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	return CodeInternal
}

// IsTransport indique une erreur réseau/HTTP: remontée à l'appelant, jamais rejouée.
func IsTransport(err error) bool {
	code := ErrorCode(err)
	return code == CodeNetwork || code == CodeHTTPStatus
}
