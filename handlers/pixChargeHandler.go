package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/middleware"
	"LOJA_PIX_GO/models"
	"LOJA_PIX_GO/payments"
	"LOJA_PIX_GO/validators"
)

// CreatePixChargeHandler abre uma cobrança imediata na Efí para um pedido pendente
// e inicia o monitoramento do pagamento em segundo plano
func CreatePixChargeHandler(orders OrderStore, charges ChargeStore, users UserStore, client ChargeClient, watcher ChargeWatcher, logger *zap.Logger) http.HandlerFunc {
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
		if order.IDUser != claims.Subject {
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
			return
		}
		if order.Status != models.OrderPending {
			http.Error(w, "Pedido já finalizado", http.StatusConflict)
			return
		}

		user, err := users.FindByID(r.Context(), order.IDUser)
		if err != nil {
			logger.Error("erro ao buscar devedor", zap.String("id_user", order.IDUser), zap.Error(err))
			http.Error(w, "Erro ao buscar usuário", http.StatusInternalServerError)
			return
		}

		charge, err := client.CreateCharge(order, payments.Payer{CPF: validators.OnlyDigits(user.CPF), Nome: user.Name})
		if err != nil {
			logger.Error("erro ao criar cobrança PIX", zap.String("id_pedido", order.ID), zap.Error(err))
			http.Error(w, "Erro ao criar cobrança PIX", http.StatusBadGateway)
			return
		}

		if err := charges.CreateCharge(r.Context(), charge); err != nil {
			logger.Error("erro ao salvar cobrança", zap.String("txid", charge.TxID), zap.Error(err))
			http.Error(w, "Erro ao salvar cobrança", http.StatusInternalServerError)
			return
		}

		logger.Info("cobrança PIX criada", zap.String("id_pedido", order.ID), zap.String("txid", charge.TxID))
		watcher.Start(context.Background(), charge.TxID)

		writeJSON(w, http.StatusCreated, charge)
	}
}

// PixChargeStatusHandler devolve a cobrança com o status atual consultado na Efí
func PixChargeStatusHandler(orders OrderStore, charges ChargeStore, client ChargeClient, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFrom(r.Context())
		if !ok {
			http.Error(w, "Token não fornecido", http.StatusUnauthorized)
			return
		}

		txid := pathVar(r, "txid")
		if txid == "" {
			http.Error(w, "txid é obrigatório", http.StatusBadRequest)
			return
		}

		charge, err := charges.FindChargeByTxID(r.Context(), txid)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, "Cobrança não encontrada", http.StatusNotFound)
				return
			}
			logger.Error("erro ao buscar cobrança", zap.String("txid", txid), zap.Error(err))
			http.Error(w, "Erro ao buscar cobrança", http.StatusInternalServerError)
			return
		}
		if !models.IsStaff(claims.Role) {
			order, err := orders.FindByID(r.Context(), charge.IDPedido)
			if err != nil || order.IDUser != claims.Subject {
				http.Error(w, "Cobrança não encontrada", http.StatusNotFound)
				return
			}
		}

		if !charge.Finalizado {
			if status, err := client.ChargeStatus(txid); err == nil {
				charge.Status = status
			} else {
				logger.Warn("erro ao consultar status do PIX", zap.String("txid", txid), zap.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, charge)
	}
}

// ResumeMonitoringHandler retoma o monitoramento de todas as cobranças em aberto
// (ex.: depois de reiniciar o servidor)
func ResumeMonitoringHandler(charges ChargeStore, watcher ChargeWatcher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txids, err := charges.PendingCharges(r.Context())
		if err != nil {
			logger.Error("erro ao buscar cobranças ativas", zap.Error(err))
			http.Error(w, "Erro ao buscar cobranças ativas", http.StatusInternalServerError)
			return
		}

		for _, txid := range txids {
			watcher.Start(context.Background(), txid)
		}

		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"message":         "Monitoramento iniciado",
			"total_monitorar": len(txids),
		})
	}
}
