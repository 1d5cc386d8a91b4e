package api

import (
	"context"
	"net/http"
	"net/url"

	donmodels "church-platform-backend/internal/features/donation/models"
)

// Packages lists the predefined donation packages.
func (c *Client) Packages(ctx context.Context) ([]donmodels.DonationPackage, error) {
	var packages []donmodels.DonationPackage
	if err := c.do(ctx, http.MethodGet, "/api/donations/packages", nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// CreateCheckout opens a payment session and returns the provider URL
// the donor should be sent to.
func (c *Client) CreateCheckout(ctx context.Context, req donmodels.CheckoutRequest) (*donmodels.CheckoutResponse, error) {
	var resp donmodels.CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/donations/checkout", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckoutStatus queries the settlement state of a payment session.
func (c *Client) CheckoutStatus(ctx context.Context, sessionID string) (*donmodels.StatusResponse, error) {
	var resp donmodels.StatusResponse
	path := "/api/donations/status/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
