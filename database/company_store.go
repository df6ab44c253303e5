package database

import (
	"context"
	"database/sql"

	"LOJA_PIX_GO/models"
)

// CompanyStore persiste contas de empresa em core.empresa
type CompanyStore struct {
	db *sql.DB
}

func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) Create(ctx context.Context, c models.Company) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO core.empresa (id, razao_social, email, password, cnpj, active, date_create)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.RazaoSocial, c.Email, c.Password, c.CNPJ, c.Active, c.DateCreate)
	return translate(err)
}
