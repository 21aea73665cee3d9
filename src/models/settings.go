package models

import (
	"bts/src/types"

	"github.com/google/uuid"
)

type Setting struct {
	ID           uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	SettingKey   string    `gorm:"uniqueIndex" json:"setting_key"`
	SettingValue string    `json:"setting_value"`

	types.Timestamps
}
