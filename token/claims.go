// Package token holds the credential pair issued by the storefront backend
// and the client-side decoding of the access token payload.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims are the fields this client reads from the access token payload.
// The token is decoded, not verified: signature verification is the
// backend's job, the client only needs the profile fields and the expiry.
type Claims struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Exp       int64 // epoch seconds
}

// ExpiresAt returns the expiry as a time. A missing exp claim yields the
// zero epoch, which every freshness check treats as expired.
func (c Claims) ExpiresAt() time.Time {
	return time.UnixMilli(c.Exp * 1000)
}

// Fresh reports whether the token is still valid at the given instant.
// Expiry is compared at millisecond resolution and must be strictly in the
// future.
func (c Claims) Fresh(now time.Time) bool {
	return c.Exp*1000 > now.UnixMilli()
}

// Decode parses the raw access token and extracts Claims from its payload.
func Decode(raw string) (Claims, error) {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse access token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.New("error extracting claims from token")
	}

	exp, _ := mapClaims["exp"].(float64)

	return Claims{
		UserID:    claimString(mapClaims["user_id"]),
		Email:     claimString(mapClaims["email"]),
		FirstName: claimString(mapClaims["first_name"]),
		LastName:  claimString(mapClaims["last_name"]),
		Phone:     claimString(mapClaims["phone"]),
		Address:   claimString(mapClaims["address"]),
		Exp:       int64(exp),
	}, nil
}

// claimString coerces a claim value to a string. Numeric user IDs are common
// in older tokens, so numbers are formatted rather than dropped.
func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}
