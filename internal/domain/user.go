package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleVendor   UserRole = "VENDOR"
	RoleAdmin    UserRole = "ADMIN"
)

type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserBlocked   UserStatus = "BLOCKED"
	UserSuspended UserStatus = "SUSPENDED"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status,omitempty"`
	Address   Address    `json:"address,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}
