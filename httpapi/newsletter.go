package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nepdora/go-storefront-auth/apierror"
)

// Subscription is a newsletter signup record.
type Subscription struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// SubscriptionPage is one page of newsletter subscriptions.
type SubscriptionPage struct {
	Count   int            `json:"count"`
	Results []Subscription `json:"results"`
}

// Subscribe creates a newsletter subscription. Failed responses are
// normalized through apierror.FromResponse, so a duplicate email surfaces
// as a conflict with its field message intact.
func (c *Client) Subscribe(ctx context.Context, email string) (*Subscription, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/newsletter/", jsonBody(map[string]string{"email": email}))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := apierror.FromResponse(resp); err != nil {
		return nil, err
	}

	var created Subscription
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}
	return &created, nil
}

// Subscriptions lists newsletter subscriptions with pagination and an
// optional search filter.
func (c *Client) Subscriptions(ctx context.Context, page, pageSize int, search string) (*SubscriptionPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	if search != "" {
		params.Set("search", search)
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/newsletter/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := apierror.FromResponse(resp); err != nil {
		return nil, err
	}

	var listing SubscriptionPage
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	return &listing, nil
}
