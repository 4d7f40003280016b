package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Registration validation failures. Each check short-circuits, so callers
// see exactly one of these per attempt. Messages are displayed verbatim.
var (
	ErrNameTooShort       = errors.New("Name must be at least 3 chars")
	ErrInvalidEmail       = errors.New("Invalid email")
	ErrInvalidPhone       = errors.New("Phone must be 10 digits")
	ErrPasswordTooShort   = errors.New("Password at least 6 chars")
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

var (
	// The deliberately loose pattern from the original form validation:
	// non-whitespace, "@", non-whitespace, ".", non-whitespace.
	simpleEmailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe       = regexp.MustCompile(`^\d{10}$`)
)

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// AuthService handles business logic for registration and login.
type AuthService struct {
	users    repositories.UserStore
	validate *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserStore) *AuthService {
	v := validator.New()
	// The stock "email" rule is stricter than the storefront's historical
	// pattern, so both patterns are registered as custom rules.
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return simpleEmailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return &AuthService{
		users:    users,
		validate: v,
	}
}

// Register validates the form fields in fixed order, short-circuiting on
// the first failure, and appends the new user on success. Nothing is
// written to storage on any failure.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if err := s.validate.Var(name, "min=3"); err != nil {
		return nil, ErrNameTooShort
	}
	email := models.NormalizeEmail(in.Email)
	if err := s.validate.Var(email, "simple_email"); err != nil {
		return nil, ErrInvalidEmail
	}
	phone := strings.TrimSpace(in.Phone)
	if err := s.validate.Var(phone, "phone10"); err != nil {
		return nil, ErrInvalidPhone
	}
	if err := s.validate.Var(in.Password, "min=6"); err != nil {
		return nil, ErrPasswordTooShort
	}
	if in.Password != in.Confirm {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	for i := range existing {
		if models.NormalizeEmail(existing[i].Email) == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: in.Password,
		Wishlist: []string{},
		Orders:   []models.Order{},
	}
	if err := s.users.Save(append(existing, user)); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("Registered user %s", email)
	return &user, nil
}

// Login authenticates a user by exact email/password match and sets the
// session on success. Unknown email and wrong password produce the same
// generic error on purpose.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	users, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	for i := range users {
		if models.NormalizeEmail(users[i].Email) == email && users[i].Password == password {
			u := users[i]
			if err := s.users.SetCurrent(&u); err != nil {
				return nil, fmt.Errorf("failed to set session: %w", err)
			}
			log.Printf("User %s logged in", email)
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}
