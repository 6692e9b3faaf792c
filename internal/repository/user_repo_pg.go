package repository

import (
	"context"
	"errors"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	UpsertGuest(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	AdjustLoyalty(ctx context.Context, id int64, delta int64) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, phone, date_of_birth, id_card, role, loyalty_points, created_at, updated_at`

func (r *PGUserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, password_hash, full_name, phone, date_of_birth, id_card, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.FullName, u.Phone, u.DateOfBirth, u.IDCard, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrEmailTaken
	}
	return err
}

// UpsertGuest resolves a checkout identity atomically: the unique email
// constraint plus RETURNING id replaces a racy create-then-refetch. Profile
// fields are only written for newly created rows.
func (r *PGUserRepository) UpsertGuest(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO users (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id`,
		u.Email, u.PasswordHash, u.FullName, u.Phone, domain.RoleCustomer).
		Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *PGUserRepository) AdjustLoyalty(ctx context.Context, id int64, delta int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET loyalty_points = loyalty_points + $1, updated_at = now() WHERE id=$2 RETURNING `+userColumns, delta, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.DateOfBirth, &u.IDCard, &u.Role, &u.LoyaltyPoints, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
