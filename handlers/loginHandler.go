package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/middleware"
	"LOJA_PIX_GO/models"
)

// Estrutura para a resposta do token
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in"`
	User      models.User `json:"user"`
}

// LoginHandler autentica com grant_type=password (form-urlencoded) e devolve o token JWT
func LoginHandler(users UserStore, secret []byte, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			http.Error(w, "Cabeçalhos inválidos", http.StatusUnsupportedMediaType)
			return
		}

		// Analisar os parâmetros recebidos
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Erro ao processar os parâmetros", http.StatusBadRequest)
			return
		}

		username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
		password := r.FormValue("password")
		grantType := r.FormValue("grant_type")

		if grantType != "password" || username == "" || password == "" {
			http.Error(w, "Parâmetros inválidos", http.StatusBadRequest)
			return
		}

		user, err := users.FindByEmail(r.Context(), username)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, "Usuário ou senha inválidos", http.StatusUnauthorized)
				return
			}
			logger.Error("erro ao buscar usuário", zap.Error(err))
			http.Error(w, "Erro ao buscar usuário", http.StatusInternalServerError)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil || !user.Active {
			http.Error(w, "Usuário ou senha inválidos", http.StatusUnauthorized)
			return
		}

		// Gerar token
		tokenString, err := middleware.IssueToken(secret, user.ID, user.Role, time.Now())
		if err != nil {
			logger.Error("erro ao gerar token", zap.Error(err))
			http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     tokenString,
			ExpiresIn: int(middleware.TokenTTL.Seconds()),
			User:      user,
		})
	}
}
