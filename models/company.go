package models

import "time"

// Company é a conta de pessoa jurídica
type Company struct {
	ID          string    `json:"id" db:"id"`
	RazaoSocial string    `json:"razao_social" db:"razao_social"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	CNPJ        string    `json:"cnpj" db:"cnpj"`
	Active      bool      `json:"active" db:"active"`
	DateCreate  time.Time `json:"date_create" db:"date_create"`
}
