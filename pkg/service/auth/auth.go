// Package auth provides login and identity resolution behind a pluggable
// strategy (JWT for the API, basic password check for the CLI).
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/config"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/domain/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository"
	repouser "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "user"

// Strategy abstracts how a caller proves identity and how the current user
// id is resolved from a request.
type Strategy interface {
	Login(ctx context.Context, identity, password string) (*dto.UserRead, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
	GenerateToken(ctx context.Context, u *dto.UserRead) (string, error)
}

// Service exposes authentication operations over the configured strategy.
type Service struct {
	uow      repository.UnitOfWork
	strategy Strategy
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	strategy Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, strategy: strategy, logger: logger}
}

func NewWithBasic(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return New(uow, &BasicAuthStrategy{uow: uow, logger: logger}, logger)
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return New(uow, &JWTStrategy{uow: uow, cfg: cfg, logger: logger}, logger)
}

// GetCurrentUserId resolves the authenticated user id from a parsed token.
func (s *Service) GetCurrentUserId(
	token *jwt.Token,
) (userID uuid.UUID, err error) {
	log := s.logger.With("context", "GetCurrentUserId")
	userID, err = s.strategy.GetCurrentUserID(
		context.WithValue(
			context.Background(),
			userContextKey,
			token,
		),
	)
	if err != nil {
		log.Error("GetCurrentUserId failed", "error", err)
		return
	}
	return
}

func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login")
	u, err = s.strategy.Login(ctx, identity, password)
	if err != nil {
		log.Error("Login failed", "identity", identity, "error", err)
		return
	}
	log.Info("Login successful", "userID", u.ID)
	return
}

func (s *Service) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return token, nil
}

// JWTStrategy implements Strategy for JWT-based authentication.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["user_id"] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return tokenString, nil
}

func (s *JWTStrategy) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "identity", identity)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*repouser.Repository)(nil))
		if err != nil {
			return fmt.Errorf("failed to get user repository: %w", err)
		}
		repo, ok := repoAny.(repouser.Repository)
		if !ok {
			return fmt.Errorf("invalid user repository type")
		}
		if utils.IsEmail(identity) {
			u, err = repo.GetByEmail(ctx, identity)
		} else {
			u, err = repo.GetByUsername(ctx, identity)
		}

		// Always run a hash comparison so lookup failures take the same
		// time as a wrong password.
		const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
		if err != nil || u == nil {
			_ = utils.CheckPasswordHash(password, dummyHash)
			log.Error("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			log.Error("Login failed", "error", user.ErrUserUnauthorized)
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *JWTStrategy) GetCurrentUserID(
	ctx context.Context,
) (userID uuid.UUID, err error) {
	token, ok := ctx.Value(userContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userIDRaw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userID, err = uuid.Parse(userIDRaw)
	if err != nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return userID, nil
}

// BasicAuthStrategy implements Strategy for the CLI: a plain password check
// with no token issuance.
type BasicAuthStrategy struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewBasicAuthStrategy(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *BasicAuthStrategy {
	return &BasicAuthStrategy{uow: uow, logger: logger}
}

func (s *BasicAuthStrategy) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("identity", identity)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repoAny, err := uow.GetRepository((*repouser.Repository)(nil))
		if err != nil {
			return fmt.Errorf("failed to get user repository: %w", err)
		}
		repo, ok := repoAny.(repouser.Repository)
		if !ok {
			return fmt.Errorf("invalid user repository type")
		}
		if utils.IsEmail(identity) {
			u, err = repo.GetByEmail(ctx, identity)
		} else {
			u, err = repo.GetByUsername(ctx, identity)
		}
		if err != nil || u == nil {
			log.Info("user not found")
			return user.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			return user.ErrUserUnauthorized
		}
		return nil
	})
	if err != nil {
		u = nil
	}
	return
}

func (s *BasicAuthStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return uuid.Nil, nil
}

// GenerateToken is a no-op for basic auth.
func (s *BasicAuthStrategy) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	return "", nil
}
