// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/database/schema"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/dberr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/postgres"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

const userResource = "User"

var userColumns = schema.Users.ColumnList()

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users table.
//
// The designer application and designer details are stored as jsonb
// documents on the identity row.
type PostgresUserRepository struct {
	db  postgres.DBTX
	now func() time.Time
}

// NewUserRepository creates a PostgreSQL implementation of [UserRepository].
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, now: time.Now}
}

/*
FindByID retrieves an identity by primary key.

Description: ids that are not UUIDs (for example the `sub` of an unverified
provider token) can never match a row and are reported as NotFound without
touching the database.

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	if !uuidv7.Valid(id) {
		return nil, apperr.NotFound(userResource)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, userResource, "postgres_user_repo_find_by_id_failed")
	}
	return user, nil
}

/*
FindByEmail retrieves an identity by email address.

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(repository.db.QueryRow(ctx, query, NormalizeEmail(email)))
	if err != nil {
		return nil, dberr.Wrap(err, userResource, "postgres_user_repo_find_by_email_failed")
	}
	return user, nil
}

/*
Create persists a new identity.

Description: the ID is generated when empty, the email is normalized and the
timestamps are initialized.

Returns:
  - error: apperr.Conflict when the email already exists
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, profile_photo, role,
			auth_provider, designer_application, designer_details, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if user.ID == "" {
		user.ID = uuidv7.New()
	}
	user.Email = NormalizeEmail(user.Email)
	now := repository.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	application, details, err := encodeDesignerDocuments(user)
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = repository.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.ProfilePhoto,
		string(user.Role),
		string(user.AuthProvider),
		application,
		details,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(MsgUserExists).WithCause(err)
		}
		return dberr.Wrap(err, userResource, "postgres_user_repo_create_failed")
	}
	return nil
}

/*
Update writes every mutable column of user.

Returns:
  - error: apperr.NotFound if the row is gone, or database errors
*/
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users SET
			password_hash = $2, first_name = $3, last_name = $4, profile_photo = $5,
			role = $6, auth_provider = $7, designer_application = $8,
			designer_details = $9, updated_at = $10
		WHERE id = $1`

	application, details, err := encodeDesignerDocuments(user)
	if err != nil {
		return apperr.Internal(err)
	}
	user.UpdatedAt = repository.now()

	tag, err := repository.db.Exec(ctx, query,
		user.ID,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.ProfilePhoto,
		string(user.Role),
		string(user.AuthProvider),
		application,
		details,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, userResource, "postgres_user_repo_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userResource)
	}
	return nil
}

// Delete removes the identity with id.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	if !uuidv7.Valid(id) {
		return apperr.NotFound(userResource)
	}

	tag, err := repository.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, userResource, "postgres_user_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(userResource)
	}
	return nil
}

// DeleteMany removes every identity with role.
func (repository *PostgresUserRepository) DeleteMany(ctx context.Context, role sec.Role) (int64, error) {
	tag, err := repository.db.Exec(ctx, `DELETE FROM users WHERE role = $1`, string(role))
	if err != nil {
		return 0, dberr.Wrap(err, userResource, "postgres_user_repo_delete_many_failed")
	}
	return tag.RowsAffected(), nil
}

// ListByRole returns identities with role, or all identities when role is empty.
func (repository *PostgresUserRepository) ListByRole(ctx context.Context, role sec.Role) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at DESC`

	rows, err := repository.db.Query(ctx, query, string(role))
	if err != nil {
		return nil, dberr.Wrap(err, userResource, "postgres_user_repo_list_failed")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, userResource, "postgres_user_repo_list_scan_failed")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, userResource, "postgres_user_repo_list_failed")
	}
	return users, nil
}

// # Row Mapping

func scanUser(row pgx.Row) (*User, error) {
	var (
		user        User
		role        string
		provider    string
		application []byte
		details     []byte
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.ProfilePhoto,
		&role,
		&provider,
		&application,
		&details,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = sec.Role(role)
	user.AuthProvider = Provider(provider)

	if len(application) > 0 {
		user.DesignerApplication = &DesignerApplication{}
		if err := json.Unmarshal(application, user.DesignerApplication); err != nil {
			return nil, fmt.Errorf("decode designer_application: %w", err)
		}
	}
	if len(details) > 0 {
		user.DesignerDetails = &DesignerDetails{}
		if err := json.Unmarshal(details, user.DesignerDetails); err != nil {
			return nil, fmt.Errorf("decode designer_details: %w", err)
		}
	}
	return &user, nil
}

// encodeDesignerDocuments marshals the embedded documents, using nil for SQL NULL.
func encodeDesignerDocuments(user *User) (application, details []byte, err error) {
	if user.DesignerApplication != nil {
		if application, err = json.Marshal(user.DesignerApplication); err != nil {
			return nil, nil, fmt.Errorf("encode designer_application: %w", err)
		}
	}
	if user.DesignerDetails != nil {
		if details, err = json.Marshal(user.DesignerDetails); err != nil {
			return nil, nil, fmt.Errorf("encode designer_details: %w", err)
		}
	}
	return application, details, nil
}
