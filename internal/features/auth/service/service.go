package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"church-platform-backend/internal/common/auth"
	apperrors "church-platform-backend/internal/common/errors"
	"church-platform-backend/internal/common/logger"
	"church-platform-backend/internal/common/validation"
	"church-platform-backend/internal/features/auth/models"
	"church-platform-backend/internal/features/auth/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	repo      repository.UserRepository
	secretKey []byte
	tokenTTL  time.Duration
}

func NewAuthService(repo repository.UserRepository, secretKey []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:      repo,
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error) {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, apperrors.NewValidationError("email", err.Error())
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, apperrors.NewValidationError("username", err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}
	if err := validation.ValidateName("le prénom", req.FirstName, validation.MaxFirstNameLength); err != nil {
		return nil, apperrors.NewValidationError("first_name", err.Error())
	}
	if err := validation.ValidateName("le nom", req.LastName, validation.MaxLastNameLength); err != nil {
		return nil, apperrors.NewValidationError("last_name", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Erreur interne du serveur")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:                  uuid.New().String(),
		Email:               req.Email,
		Username:            req.Username,
		PasswordHash:        string(hash),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Phone:               req.Phone,
		Address:             req.Address,
		BirthDate:           req.BirthDate,
		Role:                models.RoleMember,
		Status:              models.StatusActive,
		MinistryInvolvement: []string{},
		EventsAttended:      []string{},
		ExtendedProfile:     req.ExtendedProfile,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, apperrors.New(apperrors.ErrCodeEmailTaken, "Cette adresse e-mail est déjà utilisée")
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, apperrors.New(apperrors.ErrCodeUsernameTaken, "Ce nom d'utilisateur est déjà pris")
		default:
			return nil, apperrors.NewDatabaseError("create user", err)
		}
	}

	logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("New member registered")

	return s.tokenResponse(user)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperrors.NewDatabaseError("get user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	if user.Status == models.StatusSuspended {
		return nil, apperrors.New(apperrors.ErrCodeAccountSuspended, "Ce compte a été suspendu")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not worth failing the login over.
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record last login")
	}

	return s.tokenResponse(user)
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "Utilisateur introuvable")
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req and returns the stored
// profile. The returned representation is authoritative; callers replace
// their copy with it wholesale.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if err := validation.ValidateName("le prénom", *req.FirstName, validation.MaxFirstNameLength); err != nil {
			return nil, apperrors.NewValidationError("first_name", err.Error())
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if err := validation.ValidateName("le nom", *req.LastName, validation.MaxLastNameLength); err != nil {
			return nil, apperrors.NewValidationError("last_name", err.Error())
		}
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.Profession != nil {
		user.Profession = req.Profession
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.MinistryInvolvement != nil {
		user.MinistryInvolvement = req.MinistryInvolvement
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "Utilisateur introuvable")
		}
		return nil, apperrors.NewDatabaseError("update user", err)
	}

	return s.GetUser(ctx, userID)
}

func (s *authService) tokenResponse(user *models.User) (*models.TokenResponse, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.secretKey, s.tokenTTL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Erreur interne du serveur")
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInvalidCredentials, "Email ou mot de passe incorrect")
}
