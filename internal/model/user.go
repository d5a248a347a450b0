package model

import (
	"time"
)

// User is an identity record. It is created at registration and not modified afterwards.
type User struct {
	ID             string     `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Name           string     `json:"name" db:"name"`
	Role           Role       `json:"role" db:"role"`
	Specialization string     `json:"specialization,omitempty" db:"specialization"`
	Department     string     `json:"department,omitempty" db:"department"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	DateOfBirth    string     `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Address        string     `json:"address,omitempty" db:"address"`
	Avatar         string     `json:"avatar,omitempty" db:"avatar"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	CreatedAt      *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Clone returns a copy that callers may hold without sharing the table's record
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.CreatedAt != nil {
		t := *u.CreatedAt
		c.CreatedAt = &t
	}
	return &c
}
