package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"course-compass/internal/domain"
	"course-compass/internal/repository/models"
	"course-compass/internal/util"
)

const userColumns = `ID, NAME, EMAIL, PASSWORD_HASH, GOOGLE_ID, CREATED_AT, UPDATED_AT`

// UserRepositoryImpl implements domain.UserRepository
type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: util.NullStringToString(m.PasswordHash),
		GoogleID:     util.NullStringToString(m.GoogleID),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreateUser assigns an ID when missing. A duplicate email or Google ID is
// reported as a conflict.
func (r *UserRepositoryImpl) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	query := `INSERT INTO USERS (` + userColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		util.StringToNullString(user.PasswordHash),
		util.StringToNullString(user.GoogleID),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("a user with this email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, "ID", userID)
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "EMAIL", email)
}

func (r *UserRepositoryImpl) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, "GOOGLE_ID", googleID)
}

// getOne returns nil, nil when no row matches.
func (r *UserRepositoryImpl) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	var m models.User
	query := `SELECT ` + userColumns + ` FROM USERS WHERE ` + column + ` = :1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, value); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	query := `UPDATE USERS SET NAME = :1, EMAIL = :2, PASSWORD_HASH = :3, GOOGLE_ID = :4, UPDATED_AT = :5 WHERE ID = :6`
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		user.Name,
		user.Email,
		util.StringToNullString(user.PasswordHash),
		util.StringToNullString(user.GoogleID),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError("email or Google account already linked to another user")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("user not found")
	}
	return nil
}
