package models

import "bts/src/types"

type Account struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Email string `gorm:"uniqueIndex" json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `gorm:"default:'passenger'" json:"role,omitempty"`

	types.Timestamps
}
