package database

import (
	"context"
	"database/sql"

	"LOJA_PIX_GO/models"
)

// TicketStore grava os chamados de suporte em core.chamado
type TicketStore struct {
	db *sql.DB
}

func NewTicketStore(db *sql.DB) *TicketStore {
	return &TicketStore{db: db}
}

func (s *TicketStore) Create(ctx context.Context, t models.SupportTicket) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO core.chamado (id, nome, email, mensagem, id_produto, resolvido, data_create)
		VALUES ($1, $2, $3, $4, $5, false, $6)
	`, t.ID, t.Nome, t.Email, t.Mensagem, t.IDProduct, t.DataCreate)
	return translate(err)
}

// ListOpen devolve os chamados ainda não resolvidos, do mais antigo ao mais novo
func (s *TicketStore) ListOpen(ctx context.Context) ([]models.SupportTicket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nome, email, mensagem, id_produto, resolvido, data_create
		FROM core.chamado
		WHERE resolvido = false
		ORDER BY data_create
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []models.SupportTicket{}
	for rows.Next() {
		var t models.SupportTicket
		if err := rows.Scan(&t.ID, &t.Nome, &t.Email, &t.Mensagem, &t.IDProduct, &t.Resolvido, &t.DataCreate); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
