package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/models"
)

// ListProductsHandler devolve o catálogo ativo
func ListProductsHandler(products ProductStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := products.List(r.Context())
		if err != nil {
			logger.Error("erro ao listar produtos", zap.Error(err))
			http.Error(w, "Erro ao listar produtos", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func GetProductHandler(products ProductStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathVar(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			http.Error(w, "Produto não encontrado", http.StatusNotFound)
			return
		}

		p, err := products.FindByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, "Produto não encontrado", http.StatusNotFound)
				return
			}
			logger.Error("erro ao buscar produto", zap.String("id", id), zap.Error(err))
			http.Error(w, "Erro ao buscar produto", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// CreateProductHandler inclui um produto no catálogo (funcionários)
func CreateProductHandler(products ProductStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)

		if req.Name == "" || !req.Price.IsPositive() || req.Stock < 0 {
			http.Error(w, "Nome, preço positivo e estoque não negativo são obrigatórios", http.StatusBadRequest)
			return
		}
		if !req.Price.Equal(req.Price.Round(2)) {
			http.Error(w, "O preço deve ter no máximo duas casas decimais", http.StatusBadRequest)
			return
		}

		p := models.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			Active:      true,
			DateCreate:  time.Now(),
		}
		if err := products.Create(r.Context(), p); err != nil {
			logger.Error("erro ao criar produto", zap.Error(err))
			http.Error(w, "Erro ao criar produto", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}
