package models

import "time"

// Papéis de acesso
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// ValidRole indica se o papel é um dos aceitos
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleEmployee || role == RoleAdmin
}

// IsStaff indica funcionário ou administrador
func IsStaff(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

type User struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"`
	CPF        string    `json:"cpf" db:"cpf"`
	Role       string    `json:"role" db:"role"`
	Active     bool      `json:"active" db:"active"`
	DateCreate time.Time `json:"date_create" db:"date_create"`
	DateUpdate time.Time `json:"date_update" db:"date_update"`
}
