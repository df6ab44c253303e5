package database

import (
	"context"
	"database/sql"

	"LOJA_PIX_GO/models"
)

// UserStore persiste clientes e funcionários em core.user
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO core.user (id, name, email, password, cpf, role, active, date_create, date_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, u.ID, u.Name, u.Email, u.Password, u.CPF, u.Role, u.Active, u.DateCreate)
	return translate(err)
}

const userColumns = `id, name, email, password, cpf, role, active, date_create, date_update`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CPF, &u.Role, &u.Active, &u.DateCreate, &u.DateUpdate)
	return u, translate(err)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM core.user WHERE email = $1`, email))
}

func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM core.user WHERE id = $1`, id))
}

// UpdateRole altera o papel do usuário (gestão de funcionários)
func (s *UserStore) UpdateRole(ctx context.Context, id, role string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE core.user SET role = $1, date_update = now() WHERE id = $2
	`, role, id)
	if err != nil {
		return translate(err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
