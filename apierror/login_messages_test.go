package apierror_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nepdora/go-storefront-auth/apierror"
)

func responseError(status int, body map[string]any) *apierror.RequestError {
	return &apierror.RequestError{
		Origin: apierror.OriginResponse,
		Status: status,
		Body:   body,
	}
}

func errorsBody(code, message string) map[string]any {
	return map[string]any{
		"errors": []any{map[string]any{"code": code, "message": message}},
	}
}

func TestLoginMessage(t *testing.T) {
	t.Run("known backend codes map to fixed sentences", func(t *testing.T) {
		cases := map[string]string{
			"too_many_login_attempts": "Too many failed login attempts. Please wait a few minutes before trying again.",
			"invalid_credentials":     "Invalid email or password. Please check your credentials and try again.",
			"user_not_found":          "Account not found. Please check your email address or sign up for a new account.",
			"account_disabled":        "Your account has been disabled. Please contact support for assistance.",
		}
		for code, want := range cases {
			err := responseError(400, errorsBody(code, "ignored"))
			require.Equal(t, want, apierror.LoginMessage(err), "code %s", code)
		}
	})

	t.Run("unknown code falls back to the error's own message", func(t *testing.T) {
		err := responseError(400, errorsBody("weird_code", "Something odd happened"))
		require.Equal(t, "Something odd happened", apierror.LoginMessage(err))
	})

	t.Run("unknown code without message gets the generic login failure", func(t *testing.T) {
		err := responseError(400, errorsBody("weird_code", ""))
		require.Equal(t, "Login failed. Please try again.", apierror.LoginMessage(err))
	})

	t.Run("status fallbacks", func(t *testing.T) {
		cases := map[int]string{
			401: "Invalid email or password. Please check your credentials and try again.",
			400: "Invalid login credentials. Please check your email and password.",
			403: "Your account has been suspended or disabled. Please contact support.",
			404: "Account not found. Please check your email address or sign up for a new account.",
			429: "Too many login attempts. Please wait a few minutes before trying again.",
			500: "Server error occurred. Please try again later.",
			418: "Login failed. Please try again.",
		}
		for status, want := range cases {
			require.Equal(t, want, apierror.LoginMessage(responseError(status, nil)), "status %d", status)
		}
	})

	t.Run("body message fields are used for 400 and unknown statuses", func(t *testing.T) {
		err := responseError(400, map[string]any{"detail": "Email format is wrong"})
		require.Equal(t, "Email format is wrong", apierror.LoginMessage(err))

		err = responseError(418, map[string]any{"error": "teapot"})
		require.Equal(t, "teapot", apierror.LoginMessage(err))
	})

	t.Run("sent but unanswered requests read as a network problem", func(t *testing.T) {
		err := &apierror.RequestError{Origin: apierror.OriginNoResponse, Err: errors.New("EOF")}
		require.Equal(t, "Network error. Please check your internet connection and try again.", apierror.LoginMessage(err))
	})

	t.Run("send failures surface the underlying reason", func(t *testing.T) {
		err := &apierror.RequestError{Origin: apierror.OriginSendFailure, Err: errors.New("request blocked")}
		require.Equal(t, "request blocked", apierror.LoginMessage(err))
	})

	t.Run("plain errors surface their own message", func(t *testing.T) {
		require.Equal(t, "No access token received from server",
			apierror.LoginMessage(errors.New("No access token received from server")))
	})

	t.Run("nil error gets the generic sentence", func(t *testing.T) {
		require.Equal(t, "An unexpected error occurred. Please try again.", apierror.LoginMessage(nil))
	})

	t.Run("wrapped request errors are still recognized", func(t *testing.T) {
		inner := responseError(401, nil)
		wrapped := errors.Join(errors.New("login"), inner)
		require.Equal(t, "Invalid email or password. Please check your credentials and try again.",
			apierror.LoginMessage(wrapped))
	})
}
