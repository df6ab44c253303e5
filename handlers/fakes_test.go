package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/middleware"
	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/payments"
	"LOJA_PIX_GO/pix"
)

type fakeUsers struct {
	byID map[string]models.User
	err  error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, u models.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.CPF == u.CPF {
			return database.ErrConflict
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func (f *fakeUsers) FindByID(ctx context.Context, id string) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id, role string) error {
	u, ok := f.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Role = role
	f.byID[id] = u
	return nil
}

type fakeCompanies struct {
	created []models.Company
}

func (f *fakeCompanies) Create(ctx context.Context, c models.Company) error {
	for _, existing := range f.created {
		if existing.CNPJ == c.CNPJ {
			return database.ErrConflict
		}
	}
	f.created = append(f.created, c)
	return nil
}

type fakeProducts struct {
	byID map[string]models.Product
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[string]models.Product{}}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) FindByID(ctx context.Context, id string) (models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return models.Product{}, database.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := map[string]models.Product{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(ctx context.Context, p models.Product) error {
	f.byID[p.ID] = p
	return nil
}

type fakeOrders struct {
	byID    map[string]models.Order
	charges map[string]models.PixCharge
	summary []models.SalesSummary
	err     error
}

func newFakeOrders(orders ...models.Order) *fakeOrders {
	f := &fakeOrders{byID: map[string]models.Order{}, charges: map[string]models.PixCharge{}}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(ctx context.Context, o models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrders) FindByID(ctx context.Context, id string) (models.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return models.Order{}, database.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) SalesSummary(ctx context.Context) ([]models.SalesSummary, error) {
	return f.summary, f.err
}

func (f *fakeOrders) CreateCharge(ctx context.Context, c models.PixCharge) error {
	f.charges[c.TxID] = c
	return nil
}

func (f *fakeOrders) FindChargeByTxID(ctx context.Context, txid string) (models.PixCharge, error) {
	c, ok := f.charges[txid]
	if !ok {
		return models.PixCharge{}, database.ErrNotFound
	}
	return c, nil
}

func (f *fakeOrders) PendingCharges(ctx context.Context) ([]string, error) {
	var out []string
	for txid, c := range f.charges {
		if !c.Finalizado {
			out = append(out, txid)
		}
	}
	return out, nil
}

type fakeTickets struct {
	created []models.SupportTicket
}

func (f *fakeTickets) Create(ctx context.Context, t models.SupportTicket) error {
	f.created = append(f.created, t)
	return nil
}

func (f *fakeTickets) ListOpen(ctx context.Context) ([]models.SupportTicket, error) {
	return append([]models.SupportTicket{}, f.created...), nil
}

type fakeEfi struct {
	charge models.PixCharge
	status string
	err    error
	payer  payments.Payer
}

func (f *fakeEfi) CreateCharge(order models.Order, payer payments.Payer) (models.PixCharge, error) {
	f.payer = payer
	c := f.charge
	c.IDPedido = order.ID
	c.Valor = order.Total
	return c, f.err
}

func (f *fakeEfi) ChargeStatus(txid string) (string, error) {
	return f.status, f.err
}

type fakeWatcher struct {
	mu      sync.Mutex
	started []string
}

func (f *fakeWatcher) Start(ctx context.Context, txid string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, txid)
}

func testGenerator() *pix.Generator {
	g, err := pix.NewGenerator(pix.Config{Key: "14057629939", MerchantName: "CAETANO GBUR PETRY", MerchantCity: "JOINVILLE"})
	if err != nil {
		panic(err)
	}
	return g
}

func product(id, name, price string, stock int) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Stock: stock, Active: true, DateCreate: time.Now()}
}

// request monta a requisição com claims e variáveis de rota já resolvidas
func request(method, target, body string, claims *middleware.Claims, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func customer(id string) *middleware.Claims {
	c := &middleware.Claims{Role: models.RoleCustomer}
	c.Subject = id
	return c
}

func staffClaims(id string) *middleware.Claims {
	c := &middleware.Claims{Role: models.RoleEmployee}
	c.Subject = id
	return c
}
