package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/D6nnisAd/Celeste-Emerald/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUser inserts a new identity account into the database.
func (s *UserStore) CreateUser(ctx context.Context, email string, hashedPassword []byte) (*models.User, error) {
	user := &models.User{}
	query := `
		INSERT INTO users (email, hashed_password)
		VALUES ($1, $2)
		RETURNING id, email, created_at, updated_at;
	`
	err := s.db.QueryRowContext(ctx, query, email, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("User created in DB: ID=%d, Email=%s", user.ID, user.Email)
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1;
	`
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// CreateProfile writes the initial profile record for a freshly registered
// account. It is a separate write from CreateUser: if it fails the account
// still exists without a profile, and the caller surfaces the error.
func (s *UserStore) CreateProfile(ctx context.Context, uid int, fullName, username, email string) (*models.Profile, error) {
	profile := &models.Profile{
		UID:           uid,
		FullName:      fullName,
		Username:      username,
		Email:         email,
		PaymentStatus: models.PaymentStatusPending,
	}
	query := `
		INSERT INTO profiles (user_id, full_name, username, email, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	err := s.db.QueryRowContext(ctx, query, uid, fullName, username, email, profile.PaymentStatus).Scan(
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile for user %d: %w", uid, err)
	}

	log.Printf("Profile created in DB: UID=%d, Username=%s", uid, username)
	return profile, nil
}

func (s *UserStore) GetProfile(ctx context.Context, uid int) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT user_id, full_name, username, email, created_at, package, payment_status
		FROM profiles
		WHERE user_id = $1;
	`
	err := s.db.QueryRowContext(ctx, query, uid).Scan(
		&profile.UID,
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.CreatedAt,
		&profile.Package,
		&profile.PaymentStatus,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
