package models

import (
	"strconv"
	"time"
)

// Role values as they appear in session state and API payloads.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// Account holds the fields shared by members and owners. The two live in
// disjoint tables; username and email must be unique across both, which the
// auth service enforces on top of the per-table unique indexes.
type Account struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a gym member.
type User struct {
	Account
}

func (User) TableName() string { return "users" }

// Owner is a gym owner. Same shape as User, separate collection.
type Owner struct {
	Account
}

func (Owner) TableName() string { return "owners" }

// NewID returns a role-scoped identifier such as "user1693526400123456789".
// Identifiers are generated in the application, not the database, so they
// stay stable across drivers.
func NewID(prefix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixNano(), 10)
}
