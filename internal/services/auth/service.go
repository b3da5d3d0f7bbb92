package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/issue-battleships/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Config holds configuration for the auth service
type Config struct {
	Owner     model.PlayerHandle   // Exempt from cooldowns, always an admin
	Admins    []model.PlayerHandle // May reset the game
	TokenHash string               // bcrypt hash of the API bearer token; empty leaves the API open
}

// Service answers who may do what: admin checks for issue commands and
// bearer token checks for the HTTP API
type Service struct {
	owner     model.PlayerHandle
	admins    map[string]bool
	tokenHash []byte
	logger    *slog.Logger
}

// New creates a new AuthService
func New(cfg Config, logger *slog.Logger) *Service {
	admins := make(map[string]bool, len(cfg.Admins)+1)
	for _, a := range cfg.Admins {
		if a != "" {
			admins[normalize(a)] = true
		}
	}
	if cfg.Owner != "" {
		admins[normalize(cfg.Owner)] = true
	}

	var hash []byte
	if cfg.TokenHash != "" {
		hash = []byte(cfg.TokenHash)
	}

	return &Service{
		owner:     cfg.Owner,
		admins:    admins,
		tokenHash: hash,
		logger:    logger,
	}
}

// Owner returns the configured owner handle
func (s *Service) Owner() model.PlayerHandle {
	return s.owner
}

// IsOwner returns true if the handle is the owner (case-insensitive)
func (s *Service) IsOwner(player model.PlayerHandle) bool {
	return s.owner != "" && s.owner.Is(player)
}

// IsAdmin returns true if the handle may run admin commands
func (s *Service) IsAdmin(player model.PlayerHandle) bool {
	return s.admins[normalize(player)]
}

// RequireAdmin returns ErrNotAdmin unless the handle is an admin
func (s *Service) RequireAdmin(player model.PlayerHandle) error {
	if !s.IsAdmin(player) {
		s.logger.Warn("admin command refused", slog.String("player", string(player)))
		return fmt.Errorf("%w: %s", model.ErrNotAdmin, player)
	}
	return nil
}

// TokenRequired returns true if the API is protected by a bearer token
func (s *Service) TokenRequired() bool {
	return len(s.tokenHash) > 0
}

// ValidateToken checks a bearer token against the configured hash
func (s *Service) ValidateToken(token string) error {
	if !s.TokenRequired() {
		return nil
	}
	if token == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.tokenHash, []byte(token)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashToken produces the bcrypt hash to configure for a token
func HashToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("token must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken returns a random URL-safe token with a prefix
func GenerateToken(prefix string) string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

func normalize(p model.PlayerHandle) string {
	return string(p.Normalize())
}

// Interface for dependency injection
type ServiceInterface interface {
	IsOwner(player model.PlayerHandle) bool
	IsAdmin(player model.PlayerHandle) bool
	RequireAdmin(player model.PlayerHandle) error
	TokenRequired() bool
	ValidateToken(token string) error
}

var _ ServiceInterface = (*Service)(nil)
