package domain

import (
	"context"
	"time"
)

// User is a stored principal record.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser returns an active User with the given fields. ID is set by the repository on create.
func NewUser(name, email string, role Role, now time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Principal returns the request identity for u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role, IsActive: u.IsActive}
}

// Ref returns the public summary of u.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserRef is the summary a reference to a user resolves to.
// swagger:model UserRef
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserUpdate holds the fields a caller asked to change. Nil means unchanged.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Role     *Role
	IsActive *bool
}

// Privileged reports whether the update touches fields only secretaries and
// convenors may change.
func (u UserUpdate) Privileged() bool {
	return u.Role != nil || u.IsActive != nil
}

// RegisterInput is the self-service sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the user ID it was issued for.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// IdentityVerifier turns a bearer credential into a Principal.
// It fails with ErrInvalidToken, ErrUserNotFound or ErrAccountInactive.
type IdentityVerifier interface {
	Identify(ctx context.Context, token string) (Principal, error)
}

// UserRepository defines the interface for user storage.
// Lookups of missing records return ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListActiveByRoles(ctx context.Context, roles []Role) ([]*UserRef, error)
	ListRefsByIDs(ctx context.Context, ids []string) ([]*UserRef, error)
	Update(ctx context.Context, user *User) error
}

// UserService is the access layer for user records.
type UserService interface {
	List(ctx context.Context, actor Principal) ([]*User, error)
	ListMembers(ctx context.Context, actor Principal) ([]*UserRef, error)
	GetByID(ctx context.Context, actor Principal, id string) (*User, error)
	Update(ctx context.Context, actor Principal, id string, in UserUpdate) (*User, error)
}

// AuthService covers sign-up, login and credential verification.
type AuthService interface {
	IdentityVerifier
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Me(ctx context.Context, actor Principal) (*User, error)
	EnsureConvenor(ctx context.Context, name, email, password string) (*User, error)
}
