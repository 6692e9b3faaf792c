package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	FullName      string
	Phone         string
	DateOfBirth   *time.Time
	IDCard        string
	Role          Role
	LoyaltyPoints int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
