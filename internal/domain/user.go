// Package domain holds the GORM row models of the analytics replica.
// Timestamps mirror the upstream aggregate, so GORM's automatic
// created/updated tracking is disabled on every model; timestamp columns
// declare precision instead of a concrete datetime type so each driver
// picks its native fractional type (datetime(6) on the MySQL replica).
package domain

import "time"

// UserModel is the flat analytics row for the user aggregate.
type UserModel struct {
	UserID      string     `gorm:"column:user_id;type:varchar(24);primaryKey"`
	Email       string     `gorm:"type:varchar(255);not null;index:idx_users_email"`
	Phone       *string    `gorm:"type:varchar(50)"`
	DisplayName string     `gorm:"type:varchar(100);not null"`
	Avatar      *string    `gorm:"type:text"`
	Bio         *string    `gorm:"type:varchar(500)"`
	Version     int        `gorm:"default:1"`
	DeletedAt   *time.Time `gorm:"precision:6"`
	CreatedAt   time.Time  `gorm:"precision:6;not null;index:idx_users_created;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"precision:6;not null;autoUpdateTime:false"`

	// Bookkeeping: the last envelope applied to this row.
	EventID        *string    `gorm:"column:event_id;type:varchar(36)"`
	EventTimestamp *time.Time `gorm:"precision:6"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}
