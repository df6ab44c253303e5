package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // Driver PostgreSQL
)

// Erros sentinela dos repositórios
var (
	// ErrNotFound indica que o registro não existe
	ErrNotFound = errors.New("database: registro não encontrado")

	// ErrConflict indica violação de unicidade (e-mail, CPF ou CNPJ já cadastrados)
	ErrConflict = errors.New("database: registro duplicado")
)

const uniqueViolation = "23505"

// Connect cria uma conexão com o banco de dados PostgreSQL
func Connect(dbURL string) (*sql.DB, error) {
	// Abre a conexão com o banco
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao banco de dados: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Testa a conexão
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar a conexão com o banco: %w", err)
	}

	return db, nil
}

// translate converte erros do driver nos sentinelas do pacote
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
	}
	return err
}
