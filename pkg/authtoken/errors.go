package authtoken

import "errors"

var (
	// ErrMissingSecret is returned when the codec is created without a secret.
	ErrMissingSecret = errors.New("authtoken: missing signing secret")

	// ErrMissingSessionID is returned when signing is attempted without a
	// session id.
	ErrMissingSessionID = errors.New("authtoken: missing session id")

	// ErrKeyDerivation is returned when stretching a short secret fails.
	ErrKeyDerivation = errors.New("authtoken: key derivation failed")
)
