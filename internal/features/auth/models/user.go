package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// User is the member profile stored in PostgreSQL and returned by the API.
// The password hash never leaves the server.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Phone               *string    `json:"phone,omitempty"`
	Address             *string    `json:"address,omitempty"`
	BirthDate           *string    `json:"birth_date,omitempty"`
	Profession          *string    `json:"profession,omitempty"`
	Role                string     `json:"role"`
	Status              string     `json:"status"`
	Bio                 *string    `json:"bio,omitempty"`
	MinistryInvolvement []string   `json:"ministry_involvement"`
	DonationTotal       float64    `json:"donation_total"`
	EventsAttended      []string   `json:"events_attended"`
	ExtendedProfile
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
}

// ExtendedProfile carries the optional fields from the full registration
// form. All pointers: absent means the member never filled them in.
type ExtendedProfile struct {
	EducationLevel    *string `json:"education_level,omitempty"`
	ProfessionalLevel *string `json:"professional_level,omitempty"`
	NationalID        *string `json:"national_id,omitempty"`
	MaritalStatus     *string `json:"marital_status,omitempty"`
	ChildrenCount     *int    `json:"children_count,omitempty"`
	ConversionStatus  *string `json:"conversion_status,omitempty"`
	MinistryGift      *string `json:"ministry_gift,omitempty"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`

	ExtendedProfile
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload of PUT /auth/profile. Every field is
// optional; nil means "leave unchanged".
type UpdateProfileRequest struct {
	FirstName           *string  `json:"first_name,omitempty"`
	LastName            *string  `json:"last_name,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	Address             *string  `json:"address,omitempty"`
	BirthDate           *string  `json:"birth_date,omitempty"`
	Profession          *string  `json:"profession,omitempty"`
	Bio                 *string  `json:"bio,omitempty"`
	MinistryInvolvement []string `json:"ministry_involvement,omitempty"`
}

// TokenResponse is returned on successful login or registration.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}
