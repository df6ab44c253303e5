package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/validators"
)

const minPasswordLen = 6

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	CPF      string `json:"cpf"`
}

// CreateUserHandler cadastra um cliente (pessoa física)
func CreateUserHandler(users UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		// Validar os campos obrigatórios
		if req.Name == "" || req.Email == "" || req.Password == "" || req.CPF == "" {
			http.Error(w, "Todos os campos (name, email, password, cpf) são obrigatórios", http.StatusBadRequest)
			return
		}
		if !validators.ValidateEmail(req.Email) {
			http.Error(w, "E-mail inválido", http.StatusBadRequest)
			return
		}
		if !validators.ValidateCPF(req.CPF) {
			http.Error(w, "CPF inválido", http.StatusBadRequest)
			return
		}
		if len(req.Password) < minPasswordLen {
			http.Error(w, "A senha deve ter pelo menos 6 caracteres", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("erro ao gerar hash da senha", zap.Error(err))
			http.Error(w, "Erro ao criar o usuário", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		user := models.User{
			ID:         uuid.NewString(),
			Name:       req.Name,
			Email:      req.Email,
			Password:   string(hash),
			CPF:        validators.FormatCPF(req.CPF),
			Role:       models.RoleCustomer,
			Active:     true,
			DateCreate: now,
			DateUpdate: now,
		}

		if err := users.Create(r.Context(), user); err != nil {
			if errors.Is(err, database.ErrConflict) {
				http.Error(w, "E-mail ou CPF já cadastrado", http.StatusConflict)
				return
			}
			logger.Error("erro ao criar o usuário", zap.Error(err))
			http.Error(w, "Erro ao criar o usuário", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Usuário criado com sucesso",
			"id":      user.ID,
		})
	}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRoleHandler altera o papel de um usuário (gestão de funcionários)
func UpdateUserRoleHandler(users UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathVar(r, "id")

		var req updateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}
		if !models.ValidRole(req.Role) {
			http.Error(w, "Papel inválido (customer, employee ou admin)", http.StatusBadRequest)
			return
		}

		if err := users.UpdateRole(r.Context(), id, req.Role); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, "Usuário não encontrado", http.StatusNotFound)
				return
			}
			logger.Error("erro ao atualizar papel", zap.String("id_user", id), zap.Error(err))
			http.Error(w, "Erro ao atualizar papel", http.StatusInternalServerError)
			return
		}

		logger.Info("papel atualizado", zap.String("id_user", id), zap.String("role", req.Role))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Papel atualizado", "role": req.Role})
	}
}
