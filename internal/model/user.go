package model

import "time"

type UserRole string

const (
	UserRoleAdmin            UserRole = "ADMIN"
	UserRoleDoctor           UserRole = "DOCTOR"
	UserRoleReceptionist     UserRole = "RECEPTIONIST"
	UserRoleInventoryManager UserRole = "INVENTORY_MANAGER"
)

// User is an authenticated subject provisioned from the identity
// provider. The ID is the external subject identifier, not a
// locally generated key.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Doctor is the reduced listing shape for scheduling screens.
type Doctor struct {
	ID        string `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
}
