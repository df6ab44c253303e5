package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/validators"
)

const maxTicketMessage = 200

// Estrutura para ler os dados do corpo da requisição
type ticketRequest struct {
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Mensagem  string `json:"mensagem"`
	ProductID string `json:"product_id"`
}

// CreateTicketHandler abre um chamado de suporte ou diagnóstico de produto
func CreateTicketHandler(tickets TicketStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ticketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar JSON", http.StatusBadRequest)
			return
		}
		req.Nome = strings.TrimSpace(req.Nome)
		req.Email = strings.TrimSpace(req.Email)
		req.Mensagem = strings.TrimSpace(req.Mensagem)

		// Valida campos obrigatórios
		if req.Nome == "" || req.Email == "" || req.Mensagem == "" {
			http.Error(w, "Campos nome, email e mensagem são obrigatórios", http.StatusBadRequest)
			return
		}
		if !validators.ValidateEmail(req.Email) {
			http.Error(w, "E-mail inválido", http.StatusBadRequest)
			return
		}
		if utf8.RuneCountInString(req.Mensagem) > maxTicketMessage {
			http.Error(w, "A mensagem deve ter no máximo 200 caracteres", http.StatusBadRequest)
			return
		}

		ticket := models.SupportTicket{
			ID:         uuid.NewString(),
			Nome:       req.Nome,
			Email:      req.Email,
			Mensagem:   req.Mensagem,
			DataCreate: time.Now(),
		}
		if req.ProductID != "" {
			if _, err := uuid.Parse(req.ProductID); err != nil {
				http.Error(w, "product_id inválido", http.StatusBadRequest)
				return
			}
			ticket.IDProduct = &req.ProductID
		}

		if err := tickets.Create(r.Context(), ticket); err != nil {
			logger.Error("erro ao salvar chamado", zap.Error(err))
			http.Error(w, "Erro ao salvar mensagem", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Mensagem enviada com sucesso",
			"id":      ticket.ID,
		})
	}
}

// ListTicketsHandler lista os chamados em aberto para a equipe
func ListTicketsHandler(tickets TicketStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := tickets.ListOpen(r.Context())
		if err != nil {
			logger.Error("erro ao listar chamados", zap.Error(err))
			http.Error(w, "Erro ao listar chamados", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
