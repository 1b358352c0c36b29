package apierror

import "errors"

// Fixed user-facing sentences for the login flow.
const (
	msgTooManyAttempts    = "Too many failed login attempts. Please wait a few minutes before trying again."
	msgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	msgAccountNotFound    = "Account not found. Please check your email address or sign up for a new account."
	msgAccountDisabled    = "Your account has been disabled. Please contact support for assistance."
	msgAccountSuspended   = "Your account has been suspended or disabled. Please contact support."
	msgInvalidLoginInput  = "Invalid login credentials. Please check your email and password."
	msgRateLimited        = "Too many login attempts. Please wait a few minutes before trying again."
	msgServerError        = "Server error occurred. Please try again later."
	msgNetworkError       = "Network error. Please check your internet connection and try again."
	msgLoginFailed        = "Login failed. Please try again."
	msgUnexpected         = "An unexpected error occurred. Please try again."
)

// LoginMessage derives the user-facing sentence for a failed login attempt.
// The backend's error codes take priority over the HTTP status; transport
// failures that never produced a response get their own messages.
func LoginMessage(err error) string {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		if err != nil && err.Error() != "" {
			return err.Error()
		}
		return msgUnexpected
	}

	switch reqErr.Origin {
	case OriginNoResponse:
		return msgNetworkError
	case OriginSendFailure:
		if reqErr.Err != nil {
			return reqErr.Err.Error()
		}
		return msgUnexpected
	}

	if message := codedMessage(reqErr.Body); message != "" {
		return message
	}

	switch reqErr.Status {
	case 401:
		return msgInvalidCredentials
	case 400:
		return bodyMessage(reqErr.Body, msgInvalidLoginInput)
	case 403:
		return msgAccountSuspended
	case 404:
		return msgAccountNotFound
	case 429:
		return msgRateLimited
	case 500:
		return msgServerError
	default:
		return bodyMessage(reqErr.Body, msgLoginFailed)
	}
}

// codedMessage resolves the errors-array body format:
// {"errors": [{"message": "...", "code": "..."}]}. Known codes map to fixed
// sentences; an unknown code falls back to the error's own message.
func codedMessage(body map[string]any) string {
	rawErrors, ok := body["errors"].([]any)
	if !ok || len(rawErrors) == 0 {
		return ""
	}
	first, ok := rawErrors[0].(map[string]any)
	if !ok {
		return ""
	}

	code, _ := first["code"].(string)
	switch code {
	case "too_many_login_attempts":
		return msgTooManyAttempts
	case "invalid_credentials":
		return msgInvalidCredentials
	case "user_not_found":
		return msgAccountNotFound
	case "account_disabled":
		return msgAccountDisabled
	}

	if message, _ := first["message"].(string); message != "" {
		return message
	}
	return msgLoginFailed
}

// bodyMessage picks the first populated message-ish field from the body.
func bodyMessage(body map[string]any, fallback string) string {
	for _, key := range []string{"message", "error", "detail"} {
		if value, _ := body[key].(string); value != "" {
			return value
		}
	}
	return fallback
}
