package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"church-platform-backend/internal/common/cache"
	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/logger"
	"church-platform-backend/internal/common/validation"
	authrepo "church-platform-backend/internal/features/auth/repository"
	"church-platform-backend/internal/features/donation/models"
	"church-platform-backend/internal/features/donation/repository"
	"church-platform-backend/internal/platform/stripe"
)

const (
	statsCacheKey = "donations:stats"
	statsCacheTTL = 5 * time.Minute

	userDonationsLimit = 20
)

// StripeClient is the slice of the payment provider client this service
// uses, split out so tests can substitute a fake.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params stripe.CreateSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

type DonationService interface {
	Packages() []models.DonationPackage
	CreateCheckout(ctx context.Context, req *models.CheckoutRequest, userID, userEmail *string) (*models.CheckoutResponse, error)
	CheckStatus(ctx context.Context, sessionID string) (*models.StatusResponse, error)
	HandleCompletedSession(ctx context.Context, sessionID string) error
	UserDonations(ctx context.Context, userID string) ([]*models.Donation, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

type donationService struct {
	repo     repository.DonationRepository
	userRepo authrepo.UserRepository
	stripe   StripeClient
	cache    *cache.CacheService
	packages []models.DonationPackage
}

func NewDonationService(repo repository.DonationRepository, userRepo authrepo.UserRepository, stripeClient StripeClient, cacheService *cache.CacheService) DonationService {
	return &donationService{
		repo:     repo,
		userRepo: userRepo,
		stripe:   stripeClient,
		cache:    cacheService,
		packages: []models.DonationPackage{
			{ID: "blessing", Name: "Bénédiction", Amount: 25.0, Description: "Une petite bénédiction pour soutenir nos ministères"},
			{ID: "support", Name: "Soutien", Amount: 50.0, Description: "Soutenez nos activités communautaires", Suggested: true},
			{ID: "generosity", Name: "Générosité", Amount: 100.0, Description: "Un don généreux pour nos projets d'évangélisation", Suggested: true},
			{ID: "partnership", Name: "Partenariat", Amount: 250.0, Description: "Devenez partenaire de notre mission"},
			{ID: "custom", Name: "Montant personnalisé", Amount: 0.0, Description: "Choisissez le montant de votre don"},
		},
	}
}

func (s *donationService) Packages() []models.DonationPackage {
	return s.packages
}

func (s *donationService) findPackage(id string) *models.DonationPackage {
	for i := range s.packages {
		if s.packages[i].ID == id {
			return &s.packages[i]
		}
	}
	return nil
}

// resolveAmount picks the donation amount. Fixed packages always use the
// server-side amount; the custom package and package-less requests require
// a positive amount from the client.
func (s *donationService) resolveAmount(req *models.CheckoutRequest) (float64, error) {
	if req.PackageID != nil {
		pkg := s.findPackage(*req.PackageID)
		if pkg == nil {
			return 0, apperrors.New(apperrors.ErrCodeInvalidPackage, "Forfait de don invalide")
		}
		if pkg.ID != "custom" {
			return pkg.Amount, nil
		}
	}

	if req.Amount == nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidAmount, "Un montant est requis")
	}
	if err := validation.ValidateAmount(*req.Amount); err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidAmount, err.Error())
	}

	return *req.Amount, nil
}

func (s *donationService) CreateCheckout(ctx context.Context, req *models.CheckoutRequest, userID, userEmail *string) (*models.CheckoutResponse, error) {
	amount, err := s.resolveAmount(req)
	if err != nil {
		return nil, err
	}

	donationType := req.DonationType
	if donationType == "" {
		donationType = models.TypeOneTime
	}

	email := req.DonorEmail
	if email == nil {
		email = userEmail
	}

	donation := &models.Donation{
		ID:            uuid.New().String(),
		UserID:        userID,
		Email:         email,
		DonorName:     req.DonorName,
		Amount:        amount,
		Currency:      "usd",
		DonationType:  donationType,
		Message:       req.Message,
		Anonymous:     req.Anonymous,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateDonation(ctx, donation); err != nil {
		return nil, apperrors.NewDatabaseError("create donation", err)
	}

	metadata := map[string]string{
		"donation_id":   donation.ID,
		"donation_type": donation.DonationType,
		"source":        "church_website",
	}
	if userID != nil {
		metadata["user_id"] = *userID
	}
	if donation.DonorName != nil {
		metadata["donor_name"] = *donation.DonorName
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, stripe.CreateSessionParams{
		Amount:     int64(math.Round(amount * 100)),
		Currency:   "usd",
		SuccessURL: fmt.Sprintf("%s/dons/succes?session_id={CHECKOUT_SESSION_ID}", req.OriginURL),
		CancelURL:  fmt.Sprintf("%s/dons", req.OriginURL),
		Metadata:   metadata,
	})
	if err != nil {
		// The checkout never started; drop the dangling donation record.
		if delErr := s.repo.DeleteDonation(ctx, donation.ID); delErr != nil {
			logger.Warn().Err(delErr).Str("donation_id", donation.ID).Msg("Failed to clean up donation after checkout failure")
		}
		return nil, apperrors.NewPaymentProviderError("create checkout session", err)
	}

	transaction := &models.PaymentTransaction{
		ID:            uuid.New().String(),
		SessionID:     session.ID,
		UserID:        userID,
		Email:         email,
		Amount:        amount,
		Currency:      "usd",
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusPending,
		DonationID:    &donation.ID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, apperrors.NewDatabaseError("create payment transaction", err)
	}

	if err := s.repo.SetDonationSession(ctx, donation.ID, session.ID); err != nil {
		return nil, apperrors.NewDatabaseError("link donation to session", err)
	}

	logger.Info().
		Str("session_id", session.ID).
		Str("donation_id", donation.ID).
		Float64("amount", amount).
		Msg("Checkout session created")

	return &models.CheckoutResponse{
		URL:        session.URL,
		SessionID:  session.ID,
		DonationID: donation.ID,
	}, nil
}

// CheckStatus reports the state of a checkout session. Sessions already
// recorded as paid are answered locally; everything else queries the
// provider and settles the records on a paid outcome. Settling is keyed on
// the stored transaction still being pending, so a session is credited to
// the member's donation total at most once.
func (s *donationService) CheckStatus(ctx context.Context, sessionID string) (*models.StatusResponse, error) {
	transaction, err := s.repo.GetTransactionBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "Session de paiement introuvable")
		}
		return nil, apperrors.NewDatabaseError("get payment transaction", err)
	}

	if transaction.PaymentStatus == models.PaymentPaid {
		return &models.StatusResponse{
			Status:        "complete",
			PaymentStatus: models.PaymentPaid,
			Amount:        transaction.Amount,
			Currency:      transaction.Currency,
		}, nil
	}

	session, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewPaymentProviderError("get checkout session", err)
	}

	if session.PaymentStatus == "paid" {
		if err := s.settlePaid(ctx, transaction); err != nil {
			return nil, err
		}
	} else if session.Status == "expired" {
		if err := s.repo.UpdateTransactionStatus(ctx, sessionID, models.PaymentUnpaid, models.StatusExpired, nil); err != nil {
			return nil, apperrors.NewDatabaseError("expire payment transaction", err)
		}
	}

	return &models.StatusResponse{
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		Amount:        float64(session.AmountTotal) / 100,
		Currency:      session.Currency,
	}, nil
}

func (s *donationService) settlePaid(ctx context.Context, transaction *models.PaymentTransaction) error {
	now := time.Now().UTC()

	if err := s.repo.UpdateTransactionStatus(ctx, transaction.SessionID, models.PaymentPaid, models.StatusCompleted, &now); err != nil {
		return apperrors.NewDatabaseError("complete payment transaction", err)
	}

	if transaction.DonationID != nil {
		if err := s.repo.CompleteDonation(ctx, *transaction.DonationID, now); err != nil {
			return apperrors.NewDatabaseError("complete donation", err)
		}
	}

	if transaction.UserID != nil {
		if err := s.userRepo.AddToDonationTotal(ctx, *transaction.UserID, transaction.Amount); err != nil {
			logger.Warn().Err(err).
				Str("user_id", *transaction.UserID).
				Msg("Failed to update member donation total")
		}
	}

	if err := s.cache.InvalidateDonationStats(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate donation stats cache")
	}

	logger.Info().
		Str("session_id", transaction.SessionID).
		Float64("amount", transaction.Amount).
		Msg("Donation settled")

	return nil
}

// HandleCompletedSession reconciles a checkout.session.completed webhook
// event by running the same settlement path as the status endpoint.
func (s *donationService) HandleCompletedSession(ctx context.Context, sessionID string) error {
	_, err := s.CheckStatus(ctx, sessionID)
	return err
}

func (s *donationService) UserDonations(ctx context.Context, userID string) ([]*models.Donation, error) {
	donations, err := s.repo.ListByUser(ctx, userID, userDonationsLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user donations", err)
	}
	return donations, nil
}

func (s *donationService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	err := s.cache.GetOrSet(ctx, statsCacheKey, &stats, statsCacheTTL, func() (interface{}, error) {
		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return s.repo.Stats(ctx, monthStart)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("load donation stats", err)
	}

	return &stats, nil
}
