package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionTokenExpiration bounds how long a session token is accepted.
const SessionTokenExpiration = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService issues and validates session tokens and performs the
// storefront's mock sign-in. No credentials are ever verified and no
// account is persisted: login synthesizes a user from the submitted
// email and binds it to the session.
type AuthService interface {
	IssueSessionToken(sessionID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	Login(store *session.Store, email string) *domain.User
	Logout(store *session.Store)
	UpdateProfile(store *session.Store, update ProfileUpdate) (*domain.User, bool)
}

// Claims represents the JWT claims carried by a session token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// ProfileUpdate carries the editable profile fields. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	DateOfBirth *string
}

type authService struct {
	jwtSecret string
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(jwtSecret string, logger *zap.Logger) AuthService {
	return &authService{
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// IssueSessionToken signs a JWT that names the given session.
func (s *authService) IssueSessionToken(sessionID string) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login binds a synthesized user to the session. The password was
// already discarded at the transport layer; there is nothing to check
// it against.
func (s *authService) Login(store *session.Store, email string) *domain.User {
	first, last := namesFromEmail(email)
	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: first,
		LastName:  last,
		Avatar:    "/images/avatars/default.png",
	}

	store.SetUser(user)
	s.logger.Info("Mock login", zap.String("user_id", user.ID), zap.String("email", email))
	return user
}

// Logout resets the session state entirely.
func (s *authService) Logout(store *session.Store) {
	store.Logout()
}

// UpdateProfile applies an edit to the signed-in user. It reports false
// when no user is bound to the session.
func (s *authService) UpdateProfile(store *session.Store, update ProfileUpdate) (*domain.User, bool) {
	user := store.User()
	if user == nil {
		return nil, false
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = *update.DateOfBirth
	}

	store.SetUser(user)
	return user, true
}

// namesFromEmail guesses a display name from the email local part, in
// the spirit of the storefront's mock account data.
func namesFromEmail(email string) (first, last string) {
	local, _, _ := strings.Cut(email, "@")
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	first, last = "John", "Doe"
	if len(parts) > 0 && parts[0] != "" {
		first = capitalize(parts[0])
	}
	if len(parts) > 1 && parts[1] != "" {
		last = capitalize(parts[1])
	}
	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
