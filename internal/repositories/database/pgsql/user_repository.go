package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	portsrepo "github.com/craftmyfolio/cmf_backend/internal/core/ports/repositories"
	"github.com/craftmyfolio/cmf_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a pgx-backed user repository.
func NewUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:        d.UserID,
		Name:          d.Name,
		Email:         d.Email,
		ProfilePicURL: d.ProfilePicURL,
		Provider:      string(d.Provider),
		IsVerified:    d.IsVerified,
		OTP:           d.OTP,
		OTPExpiresAt:  d.OTPExpiresAt,
		LoginCount:    d.LoginCount,
		LastLoginAt:   d.LastLoginAt,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
	if d.Phone != "" {
		m.Phone = &d.Phone
	}
	if d.PasswordHash != "" {
		m.PasswordHash = &d.PasswordHash
	}
	if d.GoogleID != "" {
		m.GoogleID = &d.GoogleID
	}
	if d.GithubID != "" {
		m.GithubID = &d.GithubID
	}
	return m
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		ProfilePicURL: m.ProfilePicURL,
		Provider:      domain.AuthProvider(m.Provider),
		IsVerified:    m.IsVerified,
		OTP:           m.OTP,
		OTPExpiresAt:  m.OTPExpiresAt,
		LoginCount:    m.LoginCount,
		LastLoginAt:   m.LastLoginAt,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	if m.Phone != nil {
		d.Phone = *m.Phone
	}
	if m.PasswordHash != nil {
		d.PasswordHash = *m.PasswordHash
	}
	if m.GoogleID != nil {
		d.GoogleID = *m.GoogleID
	}
	if m.GithubID != nil {
		d.GithubID = *m.GithubID
	}
	return d
}

const userColumns = `user_id, name, email, phone, password_hash, profile_pic_url, provider,
		google_id, github_id, is_verified, otp, otp_expires_at, login_count, last_login_at,
		created_at, last_updated_at`

func scanUserRow(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.PasswordHash,
		&m.ProfilePicURL,
		&m.Provider,
		&m.GoogleID,
		&m.GithubID,
		&m.IsVerified,
		&m.OTP,
		&m.OTPExpiresAt,
		&m.LoginCount,
		&m.LastLoginAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.Phone,
		m.PasswordHash,
		m.ProfilePicURL,
		m.Provider,
		m.GoogleID,
		m.GithubID,
		m.IsVerified,
		m.OTP,
		m.OTPExpiresAt,
		m.LoginCount,
		m.LastLoginAt,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUserRow(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	d := toDomainUser(*m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	m, err := scanUserRow(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	d := toDomainUser(*m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	var column string
	switch provider {
	case domain.ProviderGoogle:
		column = "google_id"
	case domain.ProviderGithub:
		column = "github_id"
	default:
		return nil, fmt.Errorf("unsupported oauth provider: %s", provider)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1;`
	m, err := scanUserRow(r.db.QueryRow(ctx, query, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by %s: %w", column, err)
	}
	d := toDomainUser(*m)
	return &d, nil
}

func (r *PgxUserRepository) SetOTP(ctx context.Context, userID string, otp string, expiresAt time.Time) error {
	query := `
        UPDATE users
        SET otp = $1, otp_expires_at = $2, last_updated_at = $3
        WHERE user_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, otp, expiresAt, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set OTP: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearOTP(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET otp = NULL, otp_expires_at = NULL, last_updated_at = $1
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear OTP: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET is_verified = TRUE, otp = NULL, otp_expires_at = NULL, last_updated_at = $1
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	query := `
        UPDATE users
        SET login_count = login_count + 1, last_login_at = $1, last_updated_at = $1
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, at, userID)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	query := `
        UPDATE users
        SET password_hash = $1, otp = NULL, otp_expires_at = NULL, last_updated_at = $2
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
