// Package checkout resolves the outcome of a donation checkout after the
// donor returns from the external payment page. The only input is the
// session identifier carried in the return URL; the poller queries the
// status endpoint until a terminal state is reached or the retry budget
// runs out.
package checkout

import (
	"context"
	"net/url"
	"time"

	donmodels "church-platform-backend/internal/features/donation/models"
)

const (
	// DefaultAttempts bounds how many times a still-pending session is
	// queried before giving up.
	DefaultAttempts = 5
	// DefaultInterval separates consecutive poll attempts.
	DefaultInterval = 2000 * time.Millisecond

	sessionParam = "session_id"
)

// Outcome is the terminal state of one confirmation run.
type Outcome int

const (
	// OutcomePaid means the payment settled.
	OutcomePaid Outcome = iota
	// OutcomeExpired means the checkout session lapsed before payment.
	OutcomeExpired
	// OutcomeInconclusive means the retry budget ran out while the
	// session was still pending. Not an outright failure: the payment
	// may still settle and be confirmed by e-mail.
	OutcomeInconclusive
	// OutcomeTransportFailure means a status query itself failed.
	OutcomeTransportFailure
	// OutcomeCanceled means the surrounding context was torn down
	// mid-poll. No notification is emitted for it.
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomePaid:
		return "paid"
	case OutcomeExpired:
		return "expired"
	case OutcomeInconclusive:
		return "inconclusive"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// StatusClient queries the backend for a checkout session's state.
// *api.Client satisfies it.
type StatusClient interface {
	CheckoutStatus(ctx context.Context, sessionID string) (*donmodels.StatusResponse, error)
}

// Notifier receives the one-shot outcome notification. Exactly one of
// its methods is called per confirmation run, unless the run is
// canceled.
type Notifier interface {
	PaymentSucceeded(amount float64, currency string)
	PaymentFailed(message string)
}

// Sleeper waits between attempts. Tests substitute an instant one.
type Sleeper func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poller drives one checkout confirmation to a terminal state.
type Poller struct {
	client   StatusClient
	notifier Notifier
	attempts int
	interval time.Duration
	sleep    Sleeper
}

// Option adjusts a Poller. Used mostly by tests.
type Option func(*Poller)

func WithAttempts(n int) Option {
	return func(p *Poller) { p.attempts = n }
}

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func WithSleeper(s Sleeper) Option {
	return func(p *Poller) { p.sleep = s }
}

func NewPoller(client StatusClient, notifier Notifier, opts ...Option) *Poller {
	p := &Poller{
		client:   client,
		notifier: notifier,
		attempts: DefaultAttempts,
		interval: DefaultInterval,
		sleep:    realSleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectReturn inspects a page URL for the checkout session identifier
// planted by the payment provider. It returns the identifier and the URL
// with the parameter stripped, so a reload does not re-trigger
// confirmation. ok is false when the URL carries no session.
func DetectReturn(rawURL string) (sessionID, cleanedURL string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL, false
	}
	query := u.Query()
	sessionID = query.Get(sessionParam)
	if sessionID == "" {
		return "", rawURL, false
	}
	query.Del(sessionParam)
	u.RawQuery = query.Encode()
	return sessionID, u.String(), true
}

// Poll queries the status endpoint until a terminal state. Paid and
// expired responses stop immediately; a pending response is retried up
// to the attempt budget with a fixed delay in between. Any query error
// ends the run. Cancellation via ctx ends the run silently.
func (p *Poller) Poll(ctx context.Context, sessionID string) Outcome {
	for attempt := 0; attempt < p.attempts; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, p.interval); err != nil {
				return OutcomeCanceled
			}
		}
		if ctx.Err() != nil {
			return OutcomeCanceled
		}

		status, err := p.client.CheckoutStatus(ctx, sessionID)
		if err != nil {
			if ctx.Err() != nil {
				return OutcomeCanceled
			}
			p.notifier.PaymentFailed("Erreur lors de la vérification du paiement. Vérifiez votre e-mail de confirmation.")
			return OutcomeTransportFailure
		}

		if status.PaymentStatus == donmodels.PaymentPaid {
			p.notifier.PaymentSucceeded(status.Amount, status.Currency)
			return OutcomePaid
		}
		if status.Status == donmodels.StatusExpired {
			p.notifier.PaymentFailed("La session de paiement a expiré. Veuillez réessayer votre don.")
			return OutcomeExpired
		}
	}

	p.notifier.PaymentFailed("La confirmation prend plus de temps que prévu. Vérifiez votre e-mail pour la confirmation du don.")
	return OutcomeInconclusive
}
