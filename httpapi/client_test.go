package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nepdora/go-storefront-auth/apierror"
	"github.com/nepdora/go-storefront-auth/httpapi"
	"github.com/nepdora/go-storefront-auth/session"
)

func TestLogin(t *testing.T) {
	t.Run("success returns the token pair", func(t *testing.T) {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/auth/login/", r.URL.Path)
			require.NotEmpty(t, r.Header.Get("X-Request-ID"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"tokens":{"access":"acc","refresh":"ref"}}`))
		}))
		defer server.Close()

		client := httpapi.New(server.URL)
		pair, err := client.Login(context.Background(), session.Credentials{Email: "jane@example.com", Password: "pw"})

		require.NoError(t, err)
		require.Equal(t, "acc", pair.Access)
		require.Equal(t, "ref", pair.Refresh)
		require.Equal(t, "jane@example.com", captured["email"])
	})

	t.Run("rejection is tagged as a response error with the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"code":"invalid_credentials","message":"nope"}]}`))
		}))
		defer server.Close()

		client := httpapi.New(server.URL)
		_, err := client.Login(context.Background(), session.Credentials{})

		var reqErr *apierror.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, apierror.OriginResponse, reqErr.Origin)
		require.Equal(t, http.StatusUnauthorized, reqErr.Status)
		require.Equal(t, "Invalid email or password. Please check your credentials and try again.",
			apierror.LoginMessage(err))
	})

	t.Run("unreachable backend is tagged as no response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close() // immediately, so the address refuses connections

		client := httpapi.New(server.URL)
		_, err := client.Login(context.Background(), session.Credentials{})

		var reqErr *apierror.RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, apierror.OriginNoResponse, reqErr.Origin)
		require.Equal(t, "Network error. Please check your internet connection and try again.",
			apierror.LoginMessage(err))
	})
}

func TestSignup(t *testing.T) {
	t.Run("confirmation field never reaches the wire", func(t *testing.T) {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/signup/", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := httpapi.New(server.URL)
		err := client.Signup(context.Background(), session.SignupData{
			Email:           "jane@example.com",
			Password:        "pw",
			ConfirmPassword: "pw",
		})

		require.NoError(t, err)
		require.Equal(t, "jane@example.com", captured["email"])
		require.Equal(t, "pw", captured["password"])
		require.NotContains(t, captured, "confirm_password")
		require.NotContains(t, captured, "ConfirmPassword")
	})
}

func TestPageExists(t *testing.T) {
	t.Run("decodes the probe result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/publish/acme/pages/home/exists/", r.URL.Path)
			_, _ = w.Write([]byte(`{"exists":true}`))
		}))
		defer server.Close()

		exists, err := httpapi.New(server.URL).PageExists(context.Background(), "acme", "home")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("missing page is false without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		exists, err := httpapi.New(server.URL).PageExists(context.Background(), "acme", "home")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("backend failure is returned for the caller to soft-fail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := httpapi.New(server.URL).PageExists(context.Background(), "acme", "home")
		require.Error(t, err)
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("duplicate email surfaces as a normalized conflict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"params":{"email":"Email already subscribed"}}}`))
		}))
		defer server.Close()

		_, err := httpapi.New(server.URL).Subscribe(context.Background(), "jane@example.com")

		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "Email already subscribed", apiErr.Message)
		require.Equal(t, apierror.FieldErrors{"email": {"Email already subscribed"}}, apiErr.FieldErrors)
	})

	t.Run("success decodes the created subscription", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/newsletter/", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":7,"email":"jane@example.com"}`))
		}))
		defer server.Close()

		created, err := httpapi.New(server.URL).Subscribe(context.Background(), "jane@example.com")
		require.NoError(t, err)
		require.Equal(t, 7, created.ID)
	})
}

func TestSubscriptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("page"))
		require.Equal(t, "10", r.URL.Query().Get("page_size"))
		require.Equal(t, "jane", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":7,"email":"jane@example.com"}]}`))
	}))
	defer server.Close()

	listing, err := httpapi.New(server.URL).Subscriptions(context.Background(), 1, 10, "jane")
	require.NoError(t, err)
	require.Equal(t, 1, listing.Count)
	require.Len(t, listing.Results, 1)
}
