package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmtran91/flybooking/internal/auth"
	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	AdminLogin(ctx context.Context, email, password string) (string, *domain.User, error)
	ResolveGuest(ctx context.Context, contact domain.Contact) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AdjustLoyalty(ctx context.Context, id int64, delta int64) (*domain.User, error)
}

type UserService struct {
	repo      repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

type RegisterInput struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	IDCard      string     `json:"id_card,omitempty"`
}

func NewUserService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        NormalizePhone(input.Phone),
		DateOfBirth:  input.DateOfBirth,
		IDCard:       strings.TrimSpace(input.IDCard),
		Role:         domain.RoleCustomer,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password, "")
}

// AdminLogin is a regular login restricted to the admin role.
func (s *UserService) AdminLogin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password, domain.RoleAdmin)
}

func (s *UserService) login(ctx context.Context, email, password string, requiredRole domain.Role) (string, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if requiredRole != "" && user.Role != requiredRole {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.CreateAccessToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveGuest finds or creates the account behind a guest checkout in a
// single upsert. Newly created accounts use the contact phone as their
// initial password; guests supply no date of birth or ID card.
func (s *UserService) ResolveGuest(ctx context.Context, contact domain.Contact) (int64, error) {
	email := NormalizeEmail(contact.Email)
	phone := NormalizePhone(contact.Phone)
	if email == "" || phone == "" {
		return 0, errors.New("contact email and phone are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(phone), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.UpsertGuest(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(contact.FullName),
		Phone:        phone,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return 0, fmt.Errorf("resolve guest account: %w", err)
	}
	if id == 0 {
		return 0, errors.New("resolve guest account: no user id returned")
	}
	return id, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) AdjustLoyalty(ctx context.Context, id int64, delta int64) (*domain.User, error) {
	return s.repo.AdjustLoyalty(ctx, id, delta)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

var _ UserUseCase = (*UserService)(nil)
