package model

import "regexp"

// Role enumerates the account roles known to the platform.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// Password complexity bounds for submitted credentials.
const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var (
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperRegex       = regexp.MustCompile(`[A-Z]`)
	lowerRegex       = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// User represents a platform account. Password holds the bcrypt hash and is
// never serialized in responses.
type User struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	Email         string `json:"email" gorm:"uniqueIndex;size:255"`
	Password      string `json:"-" gorm:"size:255"`
	Level         int    `json:"level"`
	Role          Role   `json:"role" gorm:"size:32"`
	LevelProgress int    `json:"levelProgress"`
}

// ValidEmail reports whether the given address has a plausible email shape.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidPassword reports whether a submitted password meets the complexity
// rule: 8-128 characters with upper, lower, digit and special characters.
func ValidPassword(password string) bool {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return false
	}
	return upperRegex.MatchString(password) &&
		lowerRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialCharRegex.MatchString(password)
}
