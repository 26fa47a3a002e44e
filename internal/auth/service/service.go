// Package service implements authentication: credential sign-in, JWT access
// tokens, rotating refresh tokens and invite-only account creation.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nexus_backend/internal/auth/password"
	"nexus_backend/internal/auth/repository"
	"nexus_backend/internal/auth/token"
	"nexus_backend/internal/events"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("invalid email or password")
	ErrTokenExpired       = apperr.Unauthorized("token expired")
	ErrTokenInvalid       = apperr.Unauthorized("token invalid")
)

const refreshTokenBytes = 48
const inviteTokenBytes = 32

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// TokenPair carries a signed access token and the raw refresh token. The
// refresh token only ever travels in an HTTP-only cookie.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "load user", err)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued. A revoked or unknown token is rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	hash := token.HashSHA256(refreshToken)

	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrTokenInvalid
		}
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "load refresh token", err)
	}

	if time.Now().After(expiresAt) {
		return TokenPair{}, ErrTokenExpired
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "revoke refresh token", err)
	}

	return s.issueTokens(ctx, userID)
}

func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	hash := token.HashSHA256(refreshToken)
	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return apperr.Wrap(apperr.KindInternal, "revoke refresh token", err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (repository.UserWithRoles, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.UserWithRoles{}, apperr.NotFound("user not found")
		}
		return repository.UserWithRoles{}, apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return repository.UserWithRoles{}, apperr.Wrap(apperr.KindInternal, "load roles", err)
	}
	return repository.UserWithRoles{
		ID:        user.ID,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]repository.UserWithRoles, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list users", err)
	}
	return users, nil
}

// Invite creates a pending invite and publishes an event so the invite email
// goes out with the raw token. Only the SHA-256 hash is stored.
func (s *Service) Invite(ctx context.Context, email string, roles []string) (repository.Invite, error) {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return repository.Invite{}, apperr.Conflict("a user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.Invite{}, apperr.Wrap(apperr.KindInternal, "check email", err)
	}

	rawToken, err := token.GenerateRandomToken(inviteTokenBytes)
	if err != nil {
		return repository.Invite{}, apperr.Wrap(apperr.KindInternal, "generate invite token", err)
	}

	expiresAt := time.Now().Add(s.cfg.GetInviteTokenTTL())
	invite, err := s.repo.CreateInvite(ctx, email, roles, token.HashSHA256(rawToken), expiresAt)
	if err != nil {
		return repository.Invite{}, apperr.Wrap(apperr.KindInternal, "create invite", err)
	}

	s.bus.Publish(ctx, events.UserInvited{
		BaseEvent:   events.NewBaseEvent(),
		Email:       invite.Email,
		Roles:       invite.Roles,
		InviteToken: rawToken,
	})
	s.log.Info("user invited", "email", invite.Email, "roles", invite.Roles)

	return invite, nil
}

// AcceptInvite redeems an invite token, creates the account with the invited
// roles and signs the new user in.
func (s *Service) AcceptInvite(ctx context.Context, rawToken, plainPassword string) (TokenPair, error) {
	invite, err := s.repo.GetInviteByTokenHash(ctx, token.HashSHA256(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrTokenInvalid
		}
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "load invite", err)
	}

	if time.Now().After(invite.ExpiresAt) {
		return TokenPair{}, ErrTokenExpired
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	user, err := s.repo.CreateUser(ctx, invite.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return TokenPair{}, apperr.Conflict("a user with this email already exists")
		}
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "create user", err)
	}

	if err := s.repo.SetUserRoles(ctx, user.ID, invite.Roles); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "assign roles", err)
	}

	if err := s.repo.UseInvite(ctx, invite.ID); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "consume invite", err)
	}

	return s.issueTokens(ctx, user.ID)
}

// SetRoles replaces the user's role set and revokes all refresh tokens so the
// next access token carries the new roles.
func (s *Service) SetRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Wrap(apperr.KindInternal, "load user", err)
	}

	if err := s.repo.SetUserRoles(ctx, userID, roles); err != nil {
		return apperr.Wrap(apperr.KindInternal, "set roles", err)
	}

	if err := s.repo.RevokeAllRefreshTokens(ctx, userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "revoke refresh tokens", err)
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (TokenPair, error) {
	roles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "load roles", err)
	}

	accessToken, err := s.signJWT(userID, roles)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "sign access token", err)
	}

	refreshToken, err := token.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "generate refresh token", err)
	}

	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, token.HashSHA256(refreshToken), expiresAt); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "store refresh token", err)
	}

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

func (s *Service) signJWT(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
