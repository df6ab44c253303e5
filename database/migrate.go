package database

import (
	"database/sql"
	"fmt"
)

// migrations roda em ordem; todas as instruções são idempotentes
var migrations = []string{
	`CREATE SCHEMA IF NOT EXISTS core;`,

	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

	// Tabela user (clientes e funcionários)
	`CREATE TABLE IF NOT EXISTS core.user (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		cpf VARCHAR(14) UNIQUE NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer',
		active BOOLEAN DEFAULT true,
		date_create TIMESTAMP DEFAULT now(),
		date_update TIMESTAMP DEFAULT now()
	);`,

	// Tabela empresa (contas de pessoa jurídica)
	`CREATE TABLE IF NOT EXISTS core.empresa (
		id UUID PRIMARY KEY,
		razao_social VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		cnpj VARCHAR(18) UNIQUE NOT NULL,
		active BOOLEAN DEFAULT true,
		date_create TIMESTAMP DEFAULT now()
	);`,

	// Catálogo
	`CREATE TABLE IF NOT EXISTS core.produto (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT CHECK (length(description) <= 5500),
		price NUMERIC(12, 2) NOT NULL CHECK (price > 0),
		stock INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN DEFAULT true,
		date_create TIMESTAMP DEFAULT now()
	);`,

	`CREATE TABLE IF NOT EXISTS core.pedido (
		id UUID PRIMARY KEY,
		id_user UUID NOT NULL REFERENCES core.user(id),
		total NUMERIC(12, 2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDENTE',
		pix_copia_e_cola TEXT,
		date_create TIMESTAMP DEFAULT now(),
		date_paid TIMESTAMP
	);`,

	`CREATE TABLE IF NOT EXISTS core.pedido_item (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		id_pedido UUID NOT NULL REFERENCES core.pedido(id) ON DELETE CASCADE,
		id_produto UUID NOT NULL REFERENCES core.produto(id),
		name VARCHAR(255) NOT NULL,
		quantidade INTEGER NOT NULL CHECK (quantidade > 0),
		preco_unitario NUMERIC(12, 2) NOT NULL
	);`,

	// Cobranças dinâmicas criadas na Efí
	`CREATE TABLE IF NOT EXISTS core.pix_cobranca (
		id UUID PRIMARY KEY,
		id_pedido UUID NOT NULL REFERENCES core.pedido(id) ON DELETE CASCADE,
		txid VARCHAR(35) UNIQUE NOT NULL,
		valor NUMERIC(12, 2) NOT NULL,
		chave VARCHAR(255),
		expiracao INTEGER NOT NULL,
		location TEXT,
		pix_copia_e_cola TEXT,
		status VARCHAR(50),
		finalizado BOOLEAN NOT NULL DEFAULT FALSE,
		data_criacao TIMESTAMP WITHOUT TIME ZONE NOT NULL DEFAULT now(),
		data_pago TIMESTAMP WITHOUT TIME ZONE DEFAULT NULL
	);`,

	// Chamados de suporte / diagnóstico de produto
	`CREATE TABLE IF NOT EXISTS core.chamado (
		id UUID PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		mensagem VARCHAR(200) NOT NULL,
		id_produto UUID REFERENCES core.produto(id),
		resolvido BOOLEAN NOT NULL DEFAULT false,
		data_create TIMESTAMP DEFAULT now()
	);`,

	`CREATE INDEX IF NOT EXISTS pedido_id_user_idx ON core.pedido (id_user);`,
	`CREATE INDEX IF NOT EXISTS pix_cobranca_status_idx ON core.pix_cobranca (status) WHERE finalizado = false;`,
}

// RunMigrations cria o schema da loja
func RunMigrations(db *sql.DB) error {
	for _, query := range migrations {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("erro ao executar a query: %w\n%v", err, query)
		}
	}

	return nil
}
