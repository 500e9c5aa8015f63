package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User represents a person tracking their finances.
//
// All other resources belong to exactly one user and are removed
// together with it.
type User struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Note string
}

var ErrUserNameNotUnique = errors.New("the user name is already in use")

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Note = strings.TrimSpace(u.Note)

	return nil
}
