package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do pedido
const (
	OrderPending   = "PENDENTE"
	OrderPaid      = "PAGO"
	OrderCancelled = "CANCELADO"
)

type Order struct {
	ID         string          `json:"id" db:"id"`
	IDUser     string          `json:"id_user" db:"id_user"`
	Total      decimal.Decimal `json:"total" db:"total"`
	Status     string          `json:"status" db:"status"`
	PixPayload string          `json:"pix_copia_e_cola" db:"pix_copia_e_cola"`
	Items      []OrderItem     `json:"items"`
	DateCreate time.Time       `json:"date_create" db:"date_create"`
	DatePaid   *time.Time      `json:"date_paid,omitempty" db:"date_paid"`
}

type OrderItem struct {
	IDProduct string          `json:"product_id" db:"id_produto"`
	Name      string          `json:"name" db:"name"`
	Quantity  int             `json:"quantity" db:"quantidade"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"preco_unitario"`
}

// Reference devolve o txid usado no BR Code do pedido (UUID sem hífens, 25 caracteres)
func (o Order) Reference() string {
	ref := make([]byte, 0, 25)
	for i := 0; i < len(o.ID) && len(ref) < 25; i++ {
		if o.ID[i] != '-' {
			ref = append(ref, o.ID[i])
		}
	}
	return string(ref)
}

// SalesSummary agrupa pedidos por status para o relatório de vendas
type SalesSummary struct {
	Status string          `json:"status"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}
