// Package model contains the GORM persistence models. They mirror table
// shapes and stay out of the domain layer; repositories map them to entities.
package model

import "time"

// AccountModel mirrors the 'accounts' table. IDs are store-assigned
// bigserial values.
type AccountModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);unique;not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	PasswordHash string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Roles are written through RoleModel directly, never through this
	// association; it exists for read-side preloading only.
	Roles []*RoleModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// RoleModel mirrors the 'roles' table. AccountID references accounts.id.
type RoleModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AccountID int64  `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
