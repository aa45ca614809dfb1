package models

import (
	"tablebook/src/types"

	"github.com/google/uuid"
)

type User struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Name           string     `json:"name,omitempty"`
	Email          string     `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash   string     `json:"-"`
	Role           string     `gorm:"default:'staff'" json:"role,omitempty"`
	ActiveLocation uint       `json:"active_location,omitempty"`
	TenantID       *uuid.UUID `gorm:"type:uuid" json:"-"`

	types.Timestamps
}
