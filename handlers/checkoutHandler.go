package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/middleware"
	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/pix"
)

const maxCheckoutItems = 50

type checkoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type checkoutRequest struct {
	Items []checkoutItem `json:"items"`
}

type CheckoutResponse struct {
	OrderID         string          `json:"order_id"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	PixCopiaECola   string          `json:"pix_copia_e_cola"`
	QRCodePNGBase64 string          `json:"qrcode_png_base64"`
}

// CheckoutHandler fecha o carrinho: soma os itens, grava o pedido e gera o PIX estático
func CheckoutHandler(products ProductStore, orders OrderStore, generator PixGenerator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			http.Error(w, "Token não fornecido", http.StatusUnauthorized)
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}
		if len(req.Items) == 0 || len(req.Items) > maxCheckoutItems {
			http.Error(w, "O carrinho deve ter entre 1 e 50 itens", http.StatusBadRequest)
			return
		}

		// Agrupa itens repetidos
		quantities := make(map[string]int, len(req.Items))
		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil || item.Quantity <= 0 {
				http.Error(w, "Item inválido no carrinho", http.StatusBadRequest)
				return
			}
			quantities[pid.String()] += item.Quantity
		}
		ids := make([]string, 0, len(quantities))
		for id := range quantities {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		found, err := products.FindByIDs(r.Context(), ids)
		if err != nil {
			logger.Error("erro ao carregar produtos do carrinho", zap.Error(err))
			http.Error(w, "Erro ao processar o carrinho", http.StatusInternalServerError)
			return
		}

		order := models.Order{
			ID:         uuid.NewString(),
			IDUser:     claims.Subject,
			Status:     models.OrderPending,
			Total:      decimal.Zero,
			DateCreate: time.Now(),
		}
		for _, id := range ids {
			p, ok := found[id]
			if !ok {
				http.Error(w, "Produto indisponível: "+id, http.StatusBadRequest)
				return
			}
			qty := quantities[id]
			if qty > p.Stock {
				http.Error(w, "Estoque insuficiente para "+p.Name, http.StatusConflict)
				return
			}
			order.Items = append(order.Items, models.OrderItem{IDProduct: id, Name: p.Name, Quantity: qty, UnitPrice: p.Price})
			order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		code, err := generator.GenerateForOrder(order.Total, order.Reference())
		if err != nil {
			if errors.Is(err, pix.ErrInvalidAmount) || errors.Is(err, pix.ErrEncoding) {
				http.Error(w, "Não foi possível gerar o PIX para este pedido", http.StatusUnprocessableEntity)
				return
			}
			logger.Error("erro ao gerar PIX", zap.Error(err))
			http.Error(w, "Erro ao gerar PIX", http.StatusInternalServerError)
			return
		}
		order.PixPayload = code.Payload

		png, err := pix.EncodePNG(code.QRContent, pix.DefaultQRSize)
		if err != nil {
			logger.Error("erro ao gerar QR Code", zap.Error(err))
			http.Error(w, "Erro ao gerar QR Code", http.StatusInternalServerError)
			return
		}

		if err := orders.Create(r.Context(), order); err != nil {
			if errors.Is(err, database.ErrOutOfStock) {
				http.Error(w, "Estoque insuficiente", http.StatusConflict)
				return
			}
			logger.Error("erro ao salvar pedido", zap.Error(err))
			http.Error(w, "Erro ao salvar pedido", http.StatusInternalServerError)
			return
		}

		logger.Info("pedido criado",
			zap.String("id_pedido", order.ID),
			zap.String("id_user", order.IDUser),
			zap.String("total", order.Total.StringFixed(2)),
		)

		writeJSON(w, http.StatusCreated, CheckoutResponse{
			OrderID:         order.ID,
			Total:           order.Total,
			Status:          order.Status,
			PixCopiaECola:   code.Payload,
			QRCodePNGBase64: base64.StdEncoding.EncodeToString(png),
		})
	}
}

// GetOrderHandler devolve o pedido ao dono ou a um funcionário
func GetOrderHandler(orders OrderStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			http.Error(w, "Token não fornecido", http.StatusUnauthorized)
			return
		}

		order, ok := loadOrder(w, r, orders, logger)
		if !ok {
			return
		}
		if order.IDUser != claims.Subject && !models.IsStaff(claims.Role) {
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func loadOrder(w http.ResponseWriter, r *http.Request, orders OrderStore, logger *zap.Logger) (models.Order, bool) {
	id := pathVar(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "Pedido não encontrado", http.StatusNotFound)
		return models.Order{}, false
	}

	order, err := orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
			return models.Order{}, false
		}
		logger.Error("erro ao buscar pedido", zap.String("id_pedido", id), zap.Error(err))
		http.Error(w, "Erro ao buscar pedido", http.StatusInternalServerError)
		return models.Order{}, false
	}
	return order, true
}
