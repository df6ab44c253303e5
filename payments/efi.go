package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	efipix "github.com/efipay/sdk-go-apis-efi/src/efipay/pix"
	"github.com/google/uuid"

	"LOJA_PIX_GO/models"
)

// DefaultExpiration é a validade da cobrança imediata em segundos
const DefaultExpiration = 3600

// ErrInvalidResponse indica resposta da Efí sem os campos esperados
var ErrInvalidResponse = errors.New("payments: resposta inválida da Efí")

// efiAPI é o subconjunto do SDK da Efí usado pela loja
type efiAPI interface {
	CreateImmediateCharge(body map[string]interface{}) (string, error)
	DetailCharge(txid string) (string, error)
}

// Payer identifica o devedor da cobrança
type Payer struct {
	CPF  string
	Nome string
}

// EfiClient cria e consulta cobranças imediatas pela API PIX da Efí
type EfiClient struct {
	api        efiAPI
	pixKey     string
	expiration int
	now        func() time.Time
}

// NewEfiClient usa as credenciais no formato de config.GetCredentials
func NewEfiClient(credentials map[string]interface{}, pixKey string) *EfiClient {
	return newEfiClient(efipix.NewEfiPay(credentials), pixKey)
}

func newEfiClient(api efiAPI, pixKey string) *EfiClient {
	return &EfiClient{api: api, pixKey: pixKey, expiration: DefaultExpiration, now: time.Now}
}

type chargeResponse struct {
	TxID       string `json:"txid"`
	Status     string `json:"status"`
	Chave      string `json:"chave"`
	Calendario struct {
		Criacao   string `json:"criacao"`
		Expiracao int    `json:"expiracao"`
	} `json:"calendario"`
	Loc struct {
		ID       int    `json:"id"`
		Location string `json:"location"`
	} `json:"loc"`
	Location      string `json:"location"`
	PixCopiaECola string `json:"pixCopiaECola"`
}

// CreateCharge abre uma cobrança imediata no valor total do pedido
func (c *EfiClient) CreateCharge(order models.Order, payer Payer) (models.PixCharge, error) {
	body := map[string]interface{}{
		"calendario": map[string]interface{}{"expiracao": c.expiration},
		"devedor": map[string]interface{}{
			"cpf":  payer.CPF,
			"nome": payer.Nome,
		},
		"valor":              map[string]interface{}{"original": order.Total.StringFixed(2)},
		"chave":              c.pixKey,
		"solicitacaoPagador": "Pedido " + order.Reference(),
	}

	resStr, err := c.api.CreateImmediateCharge(body)
	if err != nil {
		return models.PixCharge{}, fmt.Errorf("erro ao criar cobrança PIX: %w", err)
	}

	var res chargeResponse
	if err := json.Unmarshal([]byte(resStr), &res); err != nil {
		return models.PixCharge{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if res.TxID == "" {
		return models.PixCharge{}, fmt.Errorf("%w: txid ausente", ErrInvalidResponse)
	}

	created, err := time.Parse(time.RFC3339, res.Calendario.Criacao)
	if err != nil {
		created = c.now()
	}
	location := res.Location
	if location == "" {
		location = res.Loc.Location
	}
	expiration := res.Calendario.Expiracao
	if expiration == 0 {
		expiration = c.expiration
	}
	key := res.Chave
	if key == "" {
		key = c.pixKey
	}

	return models.PixCharge{
		ID:            uuid.New(),
		IDPedido:      order.ID,
		TxID:          res.TxID,
		Valor:         order.Total,
		Chave:         key,
		Expiracao:     expiration,
		Location:      location,
		PixCopiaECola: res.PixCopiaECola,
		Status:        res.Status,
		DataCriacao:   created,
	}, nil
}

// ChargeStatus consulta o status atual da cobrança (ATIVA, CONCLUIDA, ...)
func (c *EfiClient) ChargeStatus(txid string) (string, error) {
	res, err := c.api.DetailCharge(txid)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar status do PIX: %w", err)
	}

	var detail struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(res), &detail); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if detail.Status == "" {
		return "", fmt.Errorf("%w: status não encontrado na resposta", ErrInvalidResponse)
	}
	return detail.Status, nil
}
