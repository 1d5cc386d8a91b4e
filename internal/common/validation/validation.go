package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxUsernameLength  = 32
	MaxFirstNameLength = 64
	MaxLastNameLength  = 64
	MaxMessageLength   = 2000
	MaxBioLength       = 1000

	MinUsernameLength = 3

	// MinPasswordLength matches the registration form check on the site.
	MinPasswordLength = 6
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("l'adresse e-mail est requise")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("adresse e-mail invalide")
	}
	return nil
}

func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("le nom d'utilisateur est requis")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("le nom d'utilisateur doit contenir entre %d et %d caractères alphanumériques",
			MinUsernameLength, MaxUsernameLength)
	}
	return nil
}

// ValidatePassword enforces the minimum length only. Anything stricter
// belongs in a password policy the church has not asked for.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("le mot de passe doit contenir au moins %d caractères", MinPasswordLength)
	}
	return nil
}

func ValidateName(field, name string, maxLength int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s est requis", field)
	}
	if len(name) > maxLength {
		return fmt.Errorf("%s ne peut pas dépasser %d caractères", field, maxLength)
	}
	return nil
}

// ValidateAmount checks a donation amount in dollars.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("le montant doit être supérieur à zéro")
	}
	if amount > 1_000_000 {
		return fmt.Errorf("le montant dépasse la limite autorisée")
	}
	return nil
}
