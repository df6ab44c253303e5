package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/handlers"
	"LOJA_PIX_GO/middleware"
	"LOJA_PIX_GO/models"
)

// Deps reúne o que as rotas precisam; Charges e Watcher são nil quando a Efí está desligada
type Deps struct {
	Users      handlers.UserStore
	Companies  handlers.CompanyStore
	Products   handlers.ProductStore
	Orders     handlers.OrderStore
	Charges    handlers.ChargeStore
	Tickets    handlers.TicketStore
	Pix        handlers.PixGenerator
	Efi        handlers.ChargeClient
	Watcher    handlers.ChargeWatcher
	JwtSecret  []byte
	CorsOrigin string
	Logger     *zap.Logger
}

// PostgresDeps liga os repositórios Postgres às interfaces dos handlers
func PostgresDeps(db *sql.DB) Deps {
	orders := database.NewOrderStore(db)
	return Deps{
		Users:     database.NewUserStore(db),
		Companies: database.NewCompanyStore(db),
		Products:  database.NewProductStore(db),
		Orders:    orders,
		Charges:   orders,
		Tickets:   database.NewTicketStore(db),
	}
}

// Handler aplica o CORS antes do roteamento, para que o pré-flight OPTIONS
// seja respondido em qualquer rota
func Handler(d Deps) http.Handler {
	return middleware.Cors(d.CorsOrigin)(SetupRoutes(d))
}

func SetupRoutes(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(d.Logger))

	auth := middleware.Auth(d.JwtSecret)
	staff := func(h http.Handler) http.Handler { return auth(middleware.RequireStaff()(h)) }
	admin := func(h http.Handler) http.Handler { return auth(middleware.RequireRole(models.RoleAdmin)(h)) }

	// Health Check
	router.HandleFunc("/health", handlers.HealthCheckHandler()).Methods(http.MethodGet)

	// Contas
	router.HandleFunc("/users", handlers.CreateUserHandler(d.Users, d.Logger)).Methods(http.MethodPost)
	router.HandleFunc("/companies", handlers.CreateCompanyHandler(d.Companies, d.Logger)).Methods(http.MethodPost)
	router.HandleFunc("/login", handlers.LoginHandler(d.Users, d.JwtSecret, d.Logger)).Methods(http.MethodPost)

	// Catálogo
	router.HandleFunc("/products", handlers.ListProductsHandler(d.Products, d.Logger)).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", handlers.GetProductHandler(d.Products, d.Logger)).Methods(http.MethodGet)
	router.Handle("/products", staff(handlers.CreateProductHandler(d.Products, d.Logger))).Methods(http.MethodPost)

	// Checkout e pedidos
	router.Handle("/checkout", auth(handlers.CheckoutHandler(d.Products, d.Orders, d.Pix, d.Logger))).Methods(http.MethodPost)
	router.Handle("/orders/{id}", auth(handlers.GetOrderHandler(d.Orders, d.Logger))).Methods(http.MethodGet)

	// Cobranças dinâmicas (Efí)
	if d.Efi != nil && d.Watcher != nil && d.Charges != nil {
		router.Handle("/orders/{id}/pix/cobranca", auth(handlers.CreatePixChargeHandler(d.Orders, d.Charges, d.Users, d.Efi, d.Watcher, d.Logger))).Methods(http.MethodPost)
		router.Handle("/pix/cobranca/{txid}", auth(handlers.PixChargeStatusHandler(d.Orders, d.Charges, d.Efi, d.Logger))).Methods(http.MethodGet)
		router.Handle("/admin/pix/monitorar", staff(handlers.ResumeMonitoringHandler(d.Charges, d.Watcher, d.Logger))).Methods(http.MethodPost)
	}

	// Suporte
	router.HandleFunc("/support/tickets", handlers.CreateTicketHandler(d.Tickets, d.Logger)).Methods(http.MethodPost)
	router.Handle("/admin/tickets", staff(handlers.ListTicketsHandler(d.Tickets, d.Logger))).Methods(http.MethodGet)

	// Administração
	router.Handle("/admin/users/{id}/role", admin(handlers.UpdateUserRoleHandler(d.Users, d.Logger))).Methods(http.MethodPut)
	router.Handle("/admin/reports/sales", staff(handlers.SalesReportHandler(d.Orders, d.Logger))).Methods(http.MethodGet)

	return router
}
