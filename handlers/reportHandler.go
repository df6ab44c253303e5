package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"LOJA_PIX_GO/models"
)

type salesReport struct {
	ByStatus    []models.SalesSummary `json:"by_status"`
	TotalOrders int                   `json:"total_orders"`
	TotalPaid   decimal.Decimal       `json:"total_paid"`
}

// SalesReportHandler resume os pedidos por status
func SalesReportHandler(orders OrderStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := orders.SalesSummary(r.Context())
		if err != nil {
			logger.Error("erro ao gerar relatório de vendas", zap.Error(err))
			http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
			return
		}

		report := salesReport{ByStatus: summary, TotalPaid: decimal.Zero}
		for _, line := range summary {
			report.TotalOrders += line.Orders
			if line.Status == models.OrderPaid {
				report.TotalPaid = report.TotalPaid.Add(line.Total)
			}
		}
		writeJSON(w, http.StatusOK, report)
	}
}
