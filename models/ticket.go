package models

import "time"

// SupportTicket é um chamado de suporte ou diagnóstico de produto
type SupportTicket struct {
	ID         string    `json:"id" db:"id"`
	Nome       string    `json:"nome" db:"nome"`
	Email      string    `json:"email" db:"email"`
	Mensagem   string    `json:"mensagem" db:"mensagem"`
	IDProduct  *string   `json:"product_id,omitempty" db:"id_produto"`
	Resolvido  bool      `json:"resolvido" db:"resolvido"`
	DataCreate time.Time `json:"data_create" db:"data_create"`
}
