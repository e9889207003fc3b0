package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/projectecho/server/internal/models"
	"github.com/projectecho/server/internal/security"
	"github.com/projectecho/server/internal/store"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type authClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegistrationInput is pre-validated at the API boundary (email shape,
// password length, name length).
type RegistrationInput struct {
	Email    string
	Password string
	Name     string
	Goals    []string
}

type CredentialsInput struct {
	Email    string
	Password string
}

// AuthService owns registration, credential checks, token issue and the
// session table backing logout. A JWT alone is not enough to authenticate: a
// matching unexpired session row must also exist, which is what makes logout
// an actual revocation rather than a client-side fiction.
type AuthService struct {
	store      store.Store
	secretKey  []byte
	bcryptCost int
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(storage store.Store, secretKey []byte, bcryptCost int, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		store:      storage,
		secretKey:  secretKey,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates the user and seeds the starting state: 10 coins, the
// default theme, the first plant, and one flagged starter task per stated
// goal. Returns the user plus a ready-to-use bearer token.
func (service *AuthService) Register(ctx context.Context, input RegistrationInput) (models.User, string, error) {
	email := normalizeEmail(input.Email)

	taken, err := service.store.Users().EmailExists(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}
	if taken {
		return models.User{}, "", ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), service.bcryptCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         strings.TrimSpace(input.Name),
		UserTheme:    models.DefaultTheme,
		UserCoins:    models.StartingCoins,
		Goals:        input.Goals,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Goals == nil {
		user.Goals = []string{}
	}

	err = service.store.Atomic(ctx, user.ID, func(tx store.Store) error {
		if err := tx.Users().Insert(ctx, &user); err != nil {
			return err
		}

		starterPlant := models.Plant{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Name:      models.StarterPlantName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Plants().Insert(ctx, &starterPlant); err != nil {
			return err
		}

		for _, goal := range user.Goals {
			goal = strings.TrimSpace(goal)
			if goal == "" {
				continue
			}
			starterTask := models.Task{
				ID:            uuid.NewString(),
				UserID:        user.ID,
				Text:          goal,
				Priority:      models.PriorityMedium,
				Recurring:     models.RecurringNone,
				IsStarterTask: true,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := tx.Tasks().Insert(ctx, &starterTask); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	token, err := service.issueSession(ctx, &user)
	if err != nil {
		return models.User{}, "", err
	}

	service.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

// Login verifies credentials and opens a fresh session. A missing account and
// a wrong password are deliberately indistinguishable to the caller.
func (service *AuthService) Login(ctx context.Context, input CredentialsInput) (models.User, string, error) {
	user, err := service.store.Users().GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := service.issueSession(ctx, &user)
	if err != nil {
		return models.User{}, "", err
	}

	now := time.Now().UTC()
	if err := service.store.Users().Update(ctx, user.ID, map[string]any{
		"last_active_at": now,
		"updated_at":     now,
	}); err != nil {
		return models.User{}, "", err
	}
	user.LastActiveAt = &now

	return user, token, nil
}

// Authenticate resolves a bearer token to its user. The token must carry a
// valid signature, be unexpired, and still have a live session row.
func (service *AuthService) Authenticate(ctx context.Context, rawToken string) (models.User, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secretKey, nil
	})
	if err != nil || !token.Valid {
		return models.User{}, ErrInvalidCredentials
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return models.User{}, ErrInvalidCredentials
	}

	session, err := service.store.Sessions().GetByTokenHash(ctx, security.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrSessionRevoked
		}
		return models.User{}, err
	}
	if session.Expired(time.Now().UTC()) || session.UserID != claims.UserID {
		return models.User{}, ErrSessionRevoked
	}

	user, err := service.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: user %s", ErrProfileNotFound, claims.UserID)
		}
		return models.User{}, err
	}
	return user, nil
}

// Logout deletes the session row for the token. Deleting an already-deleted
// session is fine; logout is idempotent.
func (service *AuthService) Logout(ctx context.Context, rawToken string) error {
	err := service.store.Sessions().DeleteByTokenHash(ctx, security.HashToken(rawToken))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// CleanupExpiredSessions removes sessions past their expiry. The document
// adapter expires session keys natively and reports zero here.
func (service *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := service.store.Sessions().DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		service.logger.Info().Int64("removed", removed).Msg("expired sessions removed")
	}
	return removed, nil
}

func (service *AuthService) issueSession(ctx context.Context, user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := authClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp have second resolution; the jti keeps two sessions
			// issued within the same second from hashing identically.
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(service.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: security.HashToken(token),
		ExpiresAt: now.Add(service.sessionTTL),
		CreatedAt: now,
	}
	if err := service.store.Sessions().Insert(ctx, &session); err != nil {
		return "", err
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
