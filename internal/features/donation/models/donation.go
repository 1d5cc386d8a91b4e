package models

import "time"

const (
	TypeOneTime = "one_time"
	TypeMonthly = "monthly"
	TypeYearly  = "yearly"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusExpired   = "expired"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentUnpaid  = "unpaid"
	PaymentFailed  = "failed"
)

// Donation is one giving intent, created before the donor is redirected to
// the payment page and completed once the payment settles.
type Donation struct {
	ID               string     `json:"id"`
	UserID           *string    `json:"user_id,omitempty"`
	Email            *string    `json:"email,omitempty"`
	DonorName        *string    `json:"donor_name,omitempty"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	DonationType     string     `json:"donation_type"`
	Message          *string    `json:"message,omitempty"`
	Anonymous        bool       `json:"anonymous"`
	PaymentSessionID *string    `json:"payment_session_id,omitempty"`
	PaymentStatus    string     `json:"payment_status"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// PaymentTransaction tracks one checkout session with the payment provider.
// There is exactly one per session ID.
type PaymentTransaction struct {
	ID            string     `json:"id"`
	SessionID     string     `json:"session_id"`
	UserID        *string    `json:"user_id,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentStatus string     `json:"payment_status"`
	Status        string     `json:"status"`
	DonationID    *string    `json:"donation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// DonationPackage is a fixed giving tier. Amounts live server-side so the
// client cannot tamper with them.
type DonationPackage struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Suggested   bool    `json:"suggested"`
}

// CheckoutRequest starts a donation checkout. Either PackageID names a fixed
// package, or Amount carries a custom value (also required for the custom
// package).
type CheckoutRequest struct {
	PackageID    *string  `json:"package_id,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	DonationType string   `json:"donation_type"`
	Message      *string  `json:"message,omitempty"`
	Anonymous    bool     `json:"anonymous"`
	DonorName    *string  `json:"donor_name,omitempty"`
	DonorEmail   *string  `json:"donor_email,omitempty"`
	OriginURL    string   `json:"origin_url" binding:"required"`
}

// CheckoutResponse carries the redirect URL for the hosted payment page.
type CheckoutResponse struct {
	URL        string `json:"url"`
	SessionID  string `json:"session_id"`
	DonationID string `json:"donation_id"`
}

// StatusResponse is the poller's view of a checkout session.
type StatusResponse struct {
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// Stats summarizes completed donations for the admin dashboard.
type Stats struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalCount    int     `json:"total_count"`
	MonthlyAmount float64 `json:"monthly_amount"`
	MonthlyCount  int     `json:"monthly_count"`
}
