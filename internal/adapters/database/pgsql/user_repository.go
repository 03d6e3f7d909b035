package pgsql

import (
	"context"
	"fmt"

	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements repositories.UserRepository
var _ portsrepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO users (user_id, line_user_id, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (line_user_id) DO UPDATE SET
            last_updated_at = EXCLUDED.last_updated_at;
    `
	_, err = tx.Exec(ctx, query,
		user.UserID,
		user.LineUserID,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if user.ActiveCompany != nil {
		query = `
            INSERT INTO companies (company_id, line_user_id, freee_company_id, refresh_token)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (line_user_id) DO UPDATE SET
                freee_company_id = EXCLUDED.freee_company_id,
                refresh_token = EXCLUDED.refresh_token;
        `
		_, err = tx.Exec(ctx, query,
			user.ActiveCompany.CompanyID,
			user.LineUserID,
			user.ActiveCompany.FreeeCompanyID,
			user.ActiveCompany.RefreshToken,
		)
		if err != nil {
			return fmt.Errorf("failed to save company: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user save: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByLineID(ctx context.Context, lineUserID string) (*domain.User, error) {
	query := `
        SELECT u.user_id, u.line_user_id, u.created_at, u.last_updated_at,
               c.company_id, c.freee_company_id, c.refresh_token
        FROM users u
        LEFT JOIN companies c ON c.line_user_id = u.line_user_id
        WHERE u.line_user_id = $1;
    `
	var (
		user           domain.User
		companyID      *string
		freeeCompanyID *int64
		refreshToken   *string
	)
	err := r.db.QueryRow(ctx, query, lineUserID).Scan(
		&user.UserID,
		&user.LineUserID,
		&user.CreatedAt,
		&user.LastUpdatedAt,
		&companyID,
		&freeeCompanyID,
		&refreshToken,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Indicate not found explicitly
		}
		return nil, fmt.Errorf("failed to find user by LINE ID: %w", err)
	}

	if companyID != nil && freeeCompanyID != nil && refreshToken != nil {
		user.ActiveCompany = &domain.Company{
			CompanyID:      *companyID,
			FreeeCompanyID: *freeeCompanyID,
			RefreshToken:   *refreshToken,
		}
	}
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT u.user_id, u.line_user_id, u.created_at, u.last_updated_at,
               c.company_id, c.freee_company_id, c.refresh_token
        FROM users u
        LEFT JOIN companies c ON c.line_user_id = u.line_user_id
        ORDER BY u.created_at;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var (
			user           domain.User
			companyID      *string
			freeeCompanyID *int64
			refreshToken   *string
		)
		if err := rows.Scan(
			&user.UserID,
			&user.LineUserID,
			&user.CreatedAt,
			&user.LastUpdatedAt,
			&companyID,
			&freeeCompanyID,
			&refreshToken,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		if companyID != nil && freeeCompanyID != nil && refreshToken != nil {
			user.ActiveCompany = &domain.Company{
				CompanyID:      *companyID,
				FreeeCompanyID: *freeeCompanyID,
				RefreshToken:   *refreshToken,
			}
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) DeleteUserByLineID(ctx context.Context, lineUserID string) error {
	// companies has ON DELETE CASCADE on line_user_id
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE line_user_id = $1;`, lineUserID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
