package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewRegCode returns a REG-XXXXXXXX code (uppercase hex, 8 digits).
func NewRegCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "REG-" + strings.ToUpper(raw[:8])
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.Code == "" {
		r.Code = NewRegCode()
	}
	return nil
}
