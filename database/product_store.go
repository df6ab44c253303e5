package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"LOJA_PIX_GO/models"
)

// ProductStore lê e grava o catálogo em core.produto
type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, COALESCE(description, ''), price, stock, active, date_create`

func scanProduct(scan func(dest ...any) error) (models.Product, error) {
	var p models.Product
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Active, &p.DateCreate)
	return p, err
}

// List devolve os produtos ativos ordenados por nome
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM core.produto WHERE active = true ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *ProductStore) FindByID(ctx context.Context, id string) (models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM core.produto WHERE id = $1`, id).Scan)
	return p, translate(err)
}

// FindByIDs carrega vários produtos ativos de uma vez, indexados pelo id
func (s *ProductStore) FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM core.produto WHERE active = true AND id = ANY($1::uuid[])
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.Product, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (s *ProductStore) Create(ctx context.Context, p models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO core.produto (id, name, description, price, stock, active, date_create)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.Active, p.DateCreate)
	return translate(err)
}
