package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/payments"
	"LOJA_PIX_GO/pix"
)

// Interfaces dos repositórios usados pelos handlers (implementadas em database)

type UserStore interface {
	Create(ctx context.Context, u models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

type CompanyStore interface {
	Create(ctx context.Context, c models.Company) error
}

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	Create(ctx context.Context, p models.Product) error
}

type OrderStore interface {
	Create(ctx context.Context, o models.Order) error
	FindByID(ctx context.Context, id string) (models.Order, error)
	SalesSummary(ctx context.Context) ([]models.SalesSummary, error)
}

type ChargeStore interface {
	CreateCharge(ctx context.Context, c models.PixCharge) error
	FindChargeByTxID(ctx context.Context, txid string) (models.PixCharge, error)
	PendingCharges(ctx context.Context) ([]string, error)
}

type TicketStore interface {
	Create(ctx context.Context, t models.SupportTicket) error
	ListOpen(ctx context.Context) ([]models.SupportTicket, error)
}

// PixGenerator gera o BR Code estático do pedido
type PixGenerator interface {
	GenerateForOrder(amount decimal.Decimal, reference string) (pix.Code, error)
}

// ChargeClient cria e consulta cobranças dinâmicas (Efí)
type ChargeClient interface {
	CreateCharge(order models.Order, payer payments.Payer) (models.PixCharge, error)
	ChargeStatus(txid string) (string, error)
}

// ChargeWatcher acompanha a cobrança em segundo plano
type ChargeWatcher interface {
	Start(ctx context.Context, txid string)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
