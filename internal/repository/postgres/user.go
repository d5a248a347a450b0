package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/patio-health/internal/model"
	"github.com/jwalitptl/patio-health/internal/repository"
)

const userColumns = `
	id, email, name, role,
	COALESCE(specialization, '') AS specialization,
	COALESCE(department, '') AS department,
	COALESCE(phone, '') AS phone,
	COALESCE(date_of_birth, '') AS date_of_birth,
	COALESCE(address, '') AS address,
	COALESCE(avatar, '') AS avatar,
	COALESCE(password_hash, '') AS password_hash,
	created_at
`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail returns the earliest record with the email, mirroring a linear scan
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM portal_users WHERE email = $1 ORDER BY seq LIMIT 1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM portal_users WHERE id = $1 ORDER BY seq LIMIT 1`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO portal_users (
			id, email, name, role, specialization, department,
			phone, date_of_birth, address, avatar, password_hash
		) VALUES (
			:id, :email, :name, :role, :specialization, :department,
			:phone, :date_of_birth, :address, :avatar, :password_hash
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM portal_users ORDER BY seq`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Seed inserts the given users when the table is empty
func Seed(ctx context.Context, repo repository.UserRepository, users []*model.User) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, u := range users {
		if err := repo.Insert(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
