package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("account does not have admin access")
	ErrInvalidSignUp      = errors.New("invalid sign up request")
)

type Service struct {
	repo   UserRepository
	tokens *TokenManager
}

func NewService(repo UserRepository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Session is the result of a successful sign in.
type Session struct {
	Token string
	User  *domain.User
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidSignUp)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidSignUp)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

// AdminSignIn authenticates through the admin entry point. Valid credentials
// on a non-admin account are refused and no token is issued.
func (s *Service) AdminSignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if user.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}

	return s.issueSession(user)
}

func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) issueSession(user *domain.User) (*Session, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}
