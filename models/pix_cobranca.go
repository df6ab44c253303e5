package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status de cobrança devolvidos pela Efí (e VENCIDO, marcado pelo monitor)
const (
	ChargeActive    = "ATIVA"
	ChargeCompleted = "CONCLUIDA"
	ChargeExpired   = "VENCIDO"
)

// PixCharge é uma cobrança imediata (dinâmica) criada na Efí para um pedido
type PixCharge struct {
	ID            uuid.UUID       `json:"id"`
	IDPedido      string          `json:"id_pedido"`
	TxID          string          `json:"txid"`
	Valor         decimal.Decimal `json:"valor"`
	Chave         string          `json:"chave"`
	Expiracao     int             `json:"expiracao"`
	Location      string          `json:"location"`
	PixCopiaECola string          `json:"pix_copia_e_cola"`
	Status        string          `json:"status"`
	Finalizado    bool            `json:"finalizado"`
	DataCriacao   time.Time       `json:"data_criacao"`
	DataPago      *time.Time      `json:"data_pago,omitempty"`
}
