package contentd

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountType is a free-form tag supplied at registration. It is carried on
// the user record and echoed into token claims but grants no permissions.
type AccountType = string

const (
	// AccountTypeUser is the default account tag
	AccountTypeUser AccountType = "user"
	// AccountTypeAdmin marks back-office accounts
	AccountTypeAdmin AccountType = "admin"
)

// User is the credential store entity
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID   `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string      `bun:"username,notnull,unique" json:"user_name,omitempty"`
	Email         string      `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string      `bun:"password_hash,notnull" json:"-"`
	Type          AccountType `bun:"account_type,notnull" json:"type,omitempty"`
	CreatedAt     *time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Normalize trims the unique identity columns before they hit the database so
// "alice@x.com " and "alice@x.com" collide on the constraint, not past it.
func (u *User) Normalize() *User {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)
	if u.Type == "" {
		u.Type = AccountTypeUser
	}
	return u
}

// Content is a stored content record. UserID captures who created it; no
// handler restricts reads or writes to that owner.
type Content struct {
	bun.BaseModel `bun:"table:contents,alias:cnt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	ContentPath   string     `bun:"content_path,notnull" json:"content_path,omitempty"`
	Category      int        `bun:"category,notnull" json:"category,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,nullzero,type:uuid" json:"user_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Category is a stored category record
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	CategoryPath  string     `bun:"category_path,notnull" json:"category_path,omitempty"`
	Category      int        `bun:"category,notnull" json:"category,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
