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

type createCompanyRequest struct {
	RazaoSocial string `json:"razao_social"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CNPJ        string `json:"cnpj"`
}

// CreateCompanyHandler cadastra uma conta de empresa (pessoa jurídica)
func CreateCompanyHandler(companies CompanyStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Erro ao decodificar o JSON", http.StatusBadRequest)
			return
		}
		req.RazaoSocial = strings.TrimSpace(req.RazaoSocial)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if req.RazaoSocial == "" || req.Email == "" || req.Password == "" || req.CNPJ == "" {
			http.Error(w, "Todos os campos (razao_social, email, password, cnpj) são obrigatórios", http.StatusBadRequest)
			return
		}
		if !validators.ValidateEmail(req.Email) {
			http.Error(w, "E-mail inválido", http.StatusBadRequest)
			return
		}
		if !validators.ValidateCNPJ(req.CNPJ) {
			http.Error(w, "CNPJ inválido", http.StatusBadRequest)
			return
		}
		if len(req.Password) < minPasswordLen {
			http.Error(w, "A senha deve ter pelo menos 6 caracteres", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("erro ao gerar hash da senha", zap.Error(err))
			http.Error(w, "Erro ao criar a empresa", http.StatusInternalServerError)
			return
		}

		company := models.Company{
			ID:          uuid.NewString(),
			RazaoSocial: req.RazaoSocial,
			Email:       req.Email,
			Password:    string(hash),
			CNPJ:        validators.FormatCNPJ(req.CNPJ),
			Active:      true,
			DateCreate:  time.Now(),
		}

		if err := companies.Create(r.Context(), company); err != nil {
			if errors.Is(err, database.ErrConflict) {
				http.Error(w, "E-mail ou CNPJ já cadastrado", http.StatusConflict)
				return
			}
			logger.Error("erro ao criar a empresa", zap.Error(err))
			http.Error(w, "Erro ao criar a empresa", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"message": "Empresa criada com sucesso",
			"id":      company.ID,
			"cnpj":    company.CNPJ,
		})
	}
}
