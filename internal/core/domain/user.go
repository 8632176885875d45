package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                int        `db:"id"`
	UUID              uuid.UUID  `db:"uuid"`
	Login             string     `db:"login" validate:"required,email,max=100"`
	EncryptedPassword string     `db:"encrypted_password" validate:"required"`
	CreatedAt         time.Time  `db:"created_date"`
	UpdatedAt         time.Time  `db:"update_date"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
