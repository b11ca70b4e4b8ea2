package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"club-events/internal/logger"
	"club-events/internal/models"
)

// ErrInvalidCredentials covers both unknown handles and bad passwords so the
// response never says which half failed.
var ErrInvalidCredentials = errors.New("invalid username or password")

type ClubDBLayer interface {
	GetClubByID(ctx context.Context, id string) (*models.Club, error)
	GetClubByUsername(ctx context.Context, username string) (*models.Club, error)
}

type Service struct {
	DB         ClubDBLayer
	Store      SessionStore
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
	Logger     *logger.Logger
}

func NewService(db ClubDBLayer, store SessionStore, secret string, ttl time.Duration, cookieName string, secure bool, log *logger.Logger) *Service {
	return &Service{
		DB:         db,
		Store:      store,
		Secret:     []byte(secret),
		TTL:        ttl,
		CookieName: cookieName,
		Secure:     secure,
		Logger:     log,
	}
}

// Login verifies credentials against the stored bcrypt digest and issues a
// session bound to the club. bcrypt's comparison is constant-time.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Club, *Session, string, error) {
	club, err := s.DB.GetClubByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, "", ErrInvalidCredentials
		}
		return nil, nil, "", fmt.Errorf("failed to look up club %q: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(club.PasswordHash), []byte(password)) != nil {
		return nil, nil, "", ErrInvalidCredentials
	}

	session := Session{
		ID:        uuid.NewString(),
		ClubID:    club.ID,
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.Store.Put(ctx, session.ID, club.ID, s.TTL); err != nil {
		return nil, nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := signToken(s.Secret, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("AUTH", fmt.Sprintf("Club %s logged in", club.Username))
	}
	return club, &session, token, nil
}

// Logout invalidates the session unconditionally. Logging out twice, or with
// a token that never resolved, is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	sessionID, err := parseToken(s.Secret, token)
	if err != nil {
		return nil
	}
	return s.Store.Delete(ctx, sessionID)
}

// CurrentClub resolves a session token to its club, or nil when the token is
// absent, expired, or invalid. That condition is never an error; a session
// store outage is.
func (s *Service) CurrentClub(ctx context.Context, token string) (*models.Club, error) {
	clubID, err := s.resolveClubID(ctx, token)
	if err != nil {
		return nil, err
	}
	if clubID == "" {
		return nil, nil
	}
	club, err := s.DB.GetClubByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load club %s: %w", clubID, err)
	}
	return club, nil
}

// resolveClubID returns the club id bound to the token. A token that does not
// resolve to a session yields "", nil; only a failing session store yields an
// error, so callers can tell an anonymous caller from a broken backend.
func (s *Service) resolveClubID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	sessionID, err := parseToken(s.Secret, token)
	if err != nil {
		return "", nil
	}
	clubID, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("AUTH", fmt.Sprintf("Session store lookup failed: %v", err))
		}
		return "", fmt.Errorf("session store lookup failed: %w", err)
	}
	return clubID, nil
}
