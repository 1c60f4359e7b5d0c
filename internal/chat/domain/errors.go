package domain

import "errors"

// error taxonomy, wrap with errprocess.Set / fmt.Errorf("%w: ...") and check with errors.Is
var (
	// ErrAuth bad, missing or expired credential
	ErrAuth = errors.New("auth error")
	// ErrValidation rejected input (empty message, bad ids)
	ErrValidation = errors.New("validation error")
	// ErrAuthorization caller is not a participant
	ErrAuthorization = errors.New("authorization error")
	// ErrProtocol malformed or unknown frame / event
	ErrProtocol = errors.New("protocol error")
	// ErrNotFound peer or conversation does not resolve in the user directory
	ErrNotFound = errors.New("not found")
)

// websocket close codes sent by the server (4000-4999 application range)
const (
	CloseAuth          = 4001
	CloseAuthorization = 4003
	CloseNotFound      = 4004
	CloseProtocol      = 4400
)

// CloseCode map an error kind to a websocket close code, 1011 for anything else
func CloseCode(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return CloseAuth
	case errors.Is(err, ErrAuthorization):
		return CloseAuthorization
	case errors.Is(err, ErrNotFound):
		return CloseNotFound
	case errors.Is(err, ErrProtocol), errors.Is(err, ErrValidation):
		return CloseProtocol
	default:
		return 1011
	}
}
