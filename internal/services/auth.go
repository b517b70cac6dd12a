package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"orgcalendar/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	verifier       domain.TokenVerifier
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// AuthConfig bundles the credential ports of an AuthService.
type AuthConfig struct {
	Hasher      domain.PasswordHasher
	Issuer      domain.TokenIssuer
	Verifier    domain.TokenVerifier
	TokenExpiry time.Duration
}

// NewAuthService creates an AuthService. emailService may be nil.
func NewAuthService(userRepo domain.UserRepository, cfg AuthConfig, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:       userRepo,
		hasher:         cfg.Hasher,
		issuer:         cfg.Issuer,
		verifier:       cfg.Verifier,
		tokenExpiry:    cfg.TokenExpiry,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Identify resolves a bearer token to the current state of its user. Role and
// active flag always come from the store, never from the token.
func (s *authService) Identify(ctx context.Context, token string) (domain.Principal, error) {
	userID, err := s.verifier.Verify(token)
	if err != nil {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, domain.ErrUserNotFound
		}
		return domain.Principal{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return domain.Principal{}, domain.ErrAccountInactive
	}
	return user.Principal(), nil
}

func (s *authService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	var ve domain.ValidationError
	if name == "" {
		ve.Add("name", "Name is required")
	}
	if !emailRegexp.MatchString(email) {
		ve.Add("email", "Valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		ve.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	user := domain.NewUser(name, email, domain.RoleUser, s.now())
	user.Phone = strings.TrimSpace(in.Phone)
	if err := s.setPassword(user, in.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email not sent", slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountInactive
	}

	token, err := s.issuer.Issue(user.ID, user.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *authService) Me(ctx context.Context, actor domain.Principal) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// EnsureConvenor creates an active convenor with the given credentials unless
// a user with that email already exists. An existing user is returned as is.
func (s *authService) EnsureConvenor(ctx context.Context, name, email, password string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = normalizeEmail(email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("bootstrap password must be at least %d characters", minPasswordLen)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Convenor"
	}
	user := domain.NewUser(name, email, domain.RoleConvenor, s.now())
	if err := s.setPassword(user, password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create convenor: %w", err)
	}
	return user, nil
}

func (s *authService) setPassword(user *domain.User, password string) error {
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return err
	}
	user.Salt = salt
	user.PasswordHash = hash
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
