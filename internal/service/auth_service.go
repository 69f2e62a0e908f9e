package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tinyshop/internal/metrics"
	"tinyshop/internal/model"
	"tinyshop/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	limiter  LoginLimiter
	recorder Recorder
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service. limiter and recorder may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	limiter LoginLimiter,
	recorder Recorder,
	logger zerolog.Logger,
) AuthService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		limiter:  limiter,
		recorder: recorder,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Validate checks credentials. When the email is unknown a dummy hash
// comparison still runs so both failure paths take similar time.
func (s *authService) Validate(ctx context.Context, email, password string) (*model.Identity, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user by email")
		return nil, fmt.Errorf("failed to validate credentials: %w", err)
	}

	if user == nil {
		s.hasher.CompareDummy(password)
		return nil, model.ErrInvalidCredentials
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, model.ErrInvalidCredentials
	}

	return &model.Identity{ID: user.ID, Email: user.Email}, nil
}

// Login validates credentials and issues an access token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if !s.allow(ctx, req.Email) {
		s.recorder.LoginAttempt(metrics.LoginThrottled)
		return nil, model.ErrTooManyAttempts
	}

	identity, err := s.Validate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			s.recorder.LoginAttempt(metrics.LoginFailure)
			s.recordFailure(ctx, req.Email)
			s.logger.Info().Msg("login rejected")
		}
		return nil, err
	}

	token, err := s.issuer.Issue(*identity)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", identity.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.reset(ctx, req.Email)
	s.recorder.LoginAttempt(metrics.LoginSuccess)

	s.logger.Info().Int64("user_id", identity.ID).Msg("login succeeded")

	return &model.TokenResponse{AccessToken: token}, nil
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, model.ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")

	return user, nil
}

// Limiter errors fail open.
func (s *authService) allow(ctx context.Context, email string) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
		return true
	}
	return ok
}

func (s *authService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *authService) reset(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login attempts")
	}
}
