package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"orgcalendar/internal/domain"
)

const userColumns = `id, name, email, role, phone, is_active, password_hash, salt, created_at, updated_at`

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func scanUser(s scanner) (*domain.User, error) {
	u := &domain.User{}
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.IsActive, &u.PasswordHash, &u.Salt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (name, email, role, phone, is_active, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Name, u.Email, u.Role, u.Phone, u.IsActive, u.PasswordHash, u.Salt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns every user, newest first.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListActiveByRoles(ctx context.Context, roles []domain.Role) ([]*domain.UserRef, error) {
	codes := make([]string, len(roles))
	for i, role := range roles {
		codes[i] = string(role)
	}
	query := `
		SELECT id, name, email, role
		FROM users
		WHERE role = ANY($1) AND is_active = TRUE
		ORDER BY name ASC
	`
	return r.listRefs(ctx, query, pq.Array(codes))
}

// ListRefsByIDs resolves user references in one round trip. Unknown and
// malformed ids are skipped.
func (r *userRepository) ListRefsByIDs(ctx context.Context, ids []string) ([]*domain.UserRef, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*domain.UserRef{}, nil
	}
	query := `SELECT id, name, email, role FROM users WHERE id = ANY($1::uuid[])`
	return r.listRefs(ctx, query, pq.Array(valid))
}

func (r *userRepository) listRefs(ctx context.Context, query string, arg any) ([]*domain.UserRef, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]*domain.UserRef, 0)
	for rows.Next() {
		ref := &domain.UserRef{}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email, &ref.Role); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	if !validID(u.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE users
		SET name = $2, phone = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, u.ID, u.Name, u.Phone, u.Role, u.IsActive, u.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
