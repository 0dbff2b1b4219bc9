package auth

import (
	"net/http"

	"github.com/Abraxas-365/craftable/errx"
)

var authErrors = errx.NewRegistry("AUTH")

var (
	// validation: the caller can fix the request and resubmit
	ErrMissingIdentifier = authErrors.Register(
		"MISSING_IDENTIFIER", errx.TypeValidation, http.StatusBadRequest,
		"At least one of email or mobile is required")
	ErrMissingLoginField = authErrors.Register(
		"MISSING_LOGIN_FIELD", errx.TypeValidation, http.StatusBadRequest,
		"Invalid login request. Provide email, mobile, or Google token")
	ErrMissingPassword = authErrors.Register(
		"MISSING_PASSWORD", errx.TypeValidation, http.StatusBadRequest,
		"Password is required")

	// authentication failures are deliberately uninformative: the
	// unknown-identifier and wrong-password cases share one error so
	// the endpoint is not an account enumeration oracle.
	ErrInvalidEmailLogin = authErrors.Register(
		"INVALID_EMAIL_LOGIN", errx.TypeAuthorization, http.StatusUnauthorized,
		"Invalid email or password")
	ErrInvalidMobileLogin = authErrors.Register(
		"INVALID_MOBILE_LOGIN", errx.TypeAuthorization, http.StatusUnauthorized,
		"Invalid mobile or password")
	ErrGoogleOnlyAccount = authErrors.Register(
		"GOOGLE_ONLY_ACCOUNT", errx.TypeAuthorization, http.StatusUnauthorized,
		"This account was created with Google. Please use Google login")
	ErrInvalidGoogleToken = authErrors.Register(
		"INVALID_GOOGLE_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized,
		"Invalid Google token")
)
