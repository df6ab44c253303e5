package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"LOJA_PIX_GO/models"
)

// ErrOutOfStock indica quantidade pedida maior que o estoque
var ErrOutOfStock = errors.New("database: estoque insuficiente")

// OrderStore persiste pedidos, itens e cobranças PIX
type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create grava o pedido com seus itens e baixa o estoque na mesma transação
func (s *OrderStore) Create(ctx context.Context, o models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO core.pedido (id, id_user, total, status, pix_copia_e_cola, date_create)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID, o.IDUser, o.Total, o.Status, o.PixPayload, o.DateCreate)
	if err != nil {
		return translate(err)
	}

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE core.produto SET stock = stock - $1 WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.IDProduct)
		if err != nil {
			return translate(err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%w: produto %s", ErrOutOfStock, item.IDProduct)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO core.pedido_item (id_pedido, id_produto, name, quantidade, preco_unitario)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.IDProduct, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return translate(err)
		}
	}

	return tx.Commit()
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, id_user, total, status, COALESCE(pix_copia_e_cola, ''), date_create, date_paid
		FROM core.pedido
		WHERE id = $1
	`, id).Scan(&o.ID, &o.IDUser, &o.Total, &o.Status, &o.PixPayload, &o.DateCreate, &o.DatePaid)
	if err != nil {
		return o, translate(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id_produto, name, quantidade, preco_unitario
		FROM core.pedido_item
		WHERE id_pedido = $1
		ORDER BY name
	`, id)
	if err != nil {
		return o, err
	}
	defer rows.Close()

	o.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.IDProduct, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return o, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

// SalesSummary agrupa quantidade e soma dos pedidos por status
func (s *OrderStore) SalesSummary(ctx context.Context) ([]models.SalesSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM core.pedido
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := []models.SalesSummary{}
	for rows.Next() {
		var line models.SalesSummary
		if err := rows.Scan(&line.Status, &line.Orders, &line.Total); err != nil {
			return nil, err
		}
		summary = append(summary, line)
	}
	return summary, rows.Err()
}

// CreateCharge grava a cobrança dinâmica devolvida pela Efí
func (s *OrderStore) CreateCharge(ctx context.Context, c models.PixCharge) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO core.pix_cobranca (
			id, id_pedido, txid, valor, chave, expiracao, location,
			pix_copia_e_cola, status, finalizado, data_criacao
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)
	`, c.ID, c.IDPedido, c.TxID, c.Valor, c.Chave, c.Expiracao, c.Location, c.PixCopiaECola, c.Status, c.DataCriacao)
	return translate(err)
}

func (s *OrderStore) FindChargeByTxID(ctx context.Context, txid string) (models.PixCharge, error) {
	var c models.PixCharge
	err := s.db.QueryRowContext(ctx, `
		SELECT id, id_pedido, txid, valor, COALESCE(chave, ''), expiracao, COALESCE(location, ''),
			COALESCE(pix_copia_e_cola, ''), COALESCE(status, ''), finalizado, data_criacao, data_pago
		FROM core.pix_cobranca
		WHERE txid = $1
	`, txid).Scan(&c.ID, &c.IDPedido, &c.TxID, &c.Valor, &c.Chave, &c.Expiracao, &c.Location,
		&c.PixCopiaECola, &c.Status, &c.Finalizado, &c.DataCriacao, &c.DataPago)
	return c, translate(err)
}

// CompleteCharge marca a cobrança como concluída e o pedido como pago
func (s *OrderStore) CompleteCharge(ctx context.Context, txid string, paidAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	var idPedido string
	err = tx.QueryRowContext(ctx, `
		UPDATE core.pix_cobranca
		SET status = $1, finalizado = true, data_pago = $2
		WHERE txid = $3
		RETURNING id_pedido
	`, models.ChargeCompleted, paidAt, txid).Scan(&idPedido)
	if err != nil {
		return translate(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE core.pedido SET status = $1, date_paid = $2 WHERE id = $3
	`, models.OrderPaid, paidAt, idPedido)
	if err != nil {
		return translate(err)
	}

	return tx.Commit()
}

// ExpireCharge marca como VENCIDO uma cobrança que não foi paga a tempo
func (s *OrderStore) ExpireCharge(ctx context.Context, txid string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE core.pix_cobranca SET status = $1, finalizado = true WHERE txid = $2 AND finalizado = false
	`, models.ChargeExpired, txid)
	if err != nil {
		return translate(err)
	}
	return expectRow(res)
}

// PendingCharges lista os txids ainda em aberto, para retomar o monitoramento
func (s *OrderStore) PendingCharges(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT txid FROM core.pix_cobranca WHERE status = $1 AND finalizado = false AND data_pago IS NULL
	`, models.ChargeActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txids []string
	for rows.Next() {
		var txid string
		if err := rows.Scan(&txid); err != nil {
			return nil, err
		}
		txids = append(txids, txid)
	}
	return txids, rows.Err()
}
