// internal/domain/account/service.go
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when registering an already-known email
var ErrEmailTaken = errors.New("account: email already registered")

// ErrInvalidCredentials is returned when login fails
var ErrInvalidCredentials = errors.New("account: invalid email or password")

// Service handles account bookkeeping: register, login, profile. There is
// no authorization anywhere, the service only reproduces the store's
// customer records and issues session tokens.
type Service struct {
	store  storage.Store
	config *config.Config
	jwt    *auth.JWTManager
	logger *logrus.Logger
}

// NewService creates a new account service and seeds the default admin
// record when no such account exists yet
func NewService(store storage.Store, cfg *config.Config, logger *logrus.Logger) *Service {
	s := &Service{
		store:  store,
		config: cfg,
		jwt:    auth.NewJWTManager(cfg),
		logger: logger,
	}
	s.seedAdmin(context.Background())
	return s
}

// Register creates a new account with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.getByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	cost := s.config.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		Role:         RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.save(ctx, acc); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(acc.ID, acc.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.WithField("email", acc.Email).Info("Account registered")
	return &AuthResponse{User: acc.Profile(), Token: token}, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	acc, err := s.getByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(acc.ID, acc.Email, acc.Role == RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &AuthResponse{User: acc.Profile(), Token: token}, nil
}

// GetProfile resolves a session token to its stored account profile
func (s *Service) GetProfile(ctx context.Context, tokenString string) (*Profile, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	acc, err := s.getByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		return nil, fmt.Errorf("account no longer exists")
	}

	profile := acc.Profile()
	return &profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func accountKey(email string) string {
	return fmt.Sprintf("account:email:%s", email)
}

func (s *Service) getByEmail(ctx context.Context, email string) (*Account, error) {
	data, err := s.store.Get(ctx, accountKey(email))
	if err != nil {
		return nil, err
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return nil, fmt.Errorf("corrupt account record: %w", err)
	}
	return &acc, nil
}

func (s *Service) save(ctx context.Context, acc Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}

	// Accounts do not expire with the session snapshots
	if err := s.store.Set(ctx, accountKey(acc.Email), data, 0); err != nil {
		return fmt.Errorf("failed to persist account: %w", err)
	}
	return nil
}

// seedAdmin creates the default admin record on first use
func (s *Service) seedAdmin(ctx context.Context) {
	const adminEmail = "admin@example.com"

	if _, err := s.getByEmail(ctx, adminEmail); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to seed admin account")
		return
	}

	admin := Account{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		Name:         "Admin User",
		Role:         RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.save(ctx, admin); err != nil {
		s.logger.WithError(err).Warn("Failed to seed admin account")
		return
	}
	s.logger.WithField("email", adminEmail).Info("Seeded admin account")
}
