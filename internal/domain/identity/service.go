package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// ConditionAssigner attaches allergy and chronic disease selections to a
// freshly created account. The condition service satisfies it directly.
type ConditionAssigner interface {
	AssignToUser(ctx context.Context, userID uuid.UUID, allergyIDs, diseaseIDs []uuid.UUID, customAllergy, customDisease string) error
}

type Service struct {
	repo       Repository
	conditions ConditionAssigner
}

// NewService builds the account service. conditions may be nil when no
// condition catalog is wired.
func NewService(repo Repository, conditions ConditionAssigner) *Service {
	return &Service{repo: repo, conditions: conditions}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.conditions != nil && hasConditionSelection(req) {
		err := s.conditions.AssignToUser(ctx, u.ID,
			req.AllergyIDs, req.ChronicDiseaseIDs, req.CustomAllergy, req.CustomDisease)
		if err != nil {
			return nil, fmt.Errorf("assign conditions: %w", err)
		}
	}
	return u, nil
}

func hasConditionSelection(req RegisterRequest) bool {
	return len(req.AllergyIDs) > 0 || len(req.ChronicDiseaseIDs) > 0 ||
		strings.TrimSpace(req.CustomAllergy) != "" || strings.TrimSpace(req.CustomDisease) != ""
}

// Authenticate verifies credentials and returns the matching user. Unknown
// email and wrong password are deliberately indistinguishable.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
