package pix

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	pixGUI           = "br.gov.bcb.pix"
	payloadFormat    = "01"
	initiationMethod = "12"
	merchantCategory = "0000"
	currencyBRL      = "986"
	countryBR        = "BR"
	txIDPrefix       = "GHCP"
	emptyReference   = "***"
	maxReferenceLen  = 25
	maxMerchantName  = 25
	maxMerchantCity  = 15
)

// Config identifica o recebedor do PIX
type Config struct {
	Key          string // chave PIX (ex.: CPF de 11 dígitos)
	MerchantName string
	MerchantCity string
}

// Code é o resultado da geração: o "copia e cola" e o conteúdo do QR são a mesma string
type Code struct {
	Payload   string `json:"pix_copia_e_cola"`
	QRContent string `json:"qrcode_conteudo"`
}

// BuildPayload monta os campos do BR Code sem o CRC. O txid (campo 62/05) é
// "GHCP" seguido do valor em centavos.
func BuildPayload(key, name, city string, amount decimal.Decimal) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}
	return buildPayload(key, name, city, amount, txIDPrefix+strconv.FormatInt(amount.Shift(2).Round(0).IntPart(), 10))
}

func buildPayload(key, name, city string, amount decimal.Decimal, reference string) (string, error) {
	account := &fieldWriter{}
	account.add(idGUI, pixGUI)
	account.add(idPixKey, key)
	if account.err != nil {
		return "", account.err
	}

	additional := &fieldWriter{}
	additional.add(idReferenceLabel, reference)
	if additional.err != nil {
		return "", additional.err
	}

	w := &fieldWriter{}
	w.add(idPayloadFormat, payloadFormat)
	w.add(idInitiationMethod, initiationMethod)
	w.add(idMerchantAccount, account.String())
	w.add(idMerchantCategory, merchantCategory)
	w.add(idTransactionCurrency, currencyBRL)
	w.add(idTransactionAmount, amount.StringFixed(2))
	w.add(idCountryCode, countryBR)
	w.add(idMerchantName, name)
	w.add(idMerchantCity, city)
	w.add(idAdditionalData, additional.String())
	if w.err != nil {
		return "", w.err
	}
	return w.String(), nil
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s deve ser maior que zero", ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s tem mais de duas casas decimais", ErrInvalidAmount, amount.String())
	}
	return nil
}

// Generator gera códigos PIX estáticos para um recebedor fixo. Não guarda estado
// entre chamadas e pode ser usado por várias goroutines.
type Generator struct {
	cfg Config
}

// NewGenerator valida a configuração e normaliza nome e cidade para o BR Code
// (sem acentos, maiúsculas, 25 e 15 caracteres).
func NewGenerator(cfg Config) (*Generator, error) {
	cfg.Key = strings.TrimSpace(cfg.Key)
	cfg.MerchantName = normalizeText(cfg.MerchantName, maxMerchantName)
	cfg.MerchantCity = normalizeText(cfg.MerchantCity, maxMerchantCity)

	switch {
	case cfg.Key == "":
		return nil, fmt.Errorf("%w: chave PIX vazia", ErrInvalidConfig)
	case cfg.MerchantName == "":
		return nil, fmt.Errorf("%w: nome do recebedor vazio", ErrInvalidConfig)
	case cfg.MerchantCity == "":
		return nil, fmt.Errorf("%w: cidade do recebedor vazia", ErrInvalidConfig)
	}
	if _, err := Field(idPixKey, cfg.Key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Generator{cfg: cfg}, nil
}

// Config devolve a configuração já normalizada
func (g *Generator) Config() Config { return g.cfg }

// Generate monta o BR Code com CRC para o valor. Mesmo valor, mesmo código.
func (g *Generator) Generate(amount decimal.Decimal) (Code, error) {
	payload, err := BuildPayload(g.cfg.Key, g.cfg.MerchantName, g.cfg.MerchantCity, amount)
	if err != nil {
		return Code{}, err
	}
	return newCode(payload), nil
}

// GenerateForOrder usa a referência do pedido como txid no lugar do valor em centavos
func (g *Generator) GenerateForOrder(amount decimal.Decimal, reference string) (Code, error) {
	if err := checkAmount(amount); err != nil {
		return Code{}, err
	}
	payload, err := buildPayload(g.cfg.Key, g.cfg.MerchantName, g.cfg.MerchantCity, amount, SanitizeReference(reference))
	if err != nil {
		return Code{}, err
	}
	return newCode(payload), nil
}

func newCode(payload string) Code {
	code := AppendCRC(payload)
	return Code{Payload: code, QRContent: code}
}

// SanitizeReference limita o txid a alfanuméricos ASCII, no máximo 25 caracteres
func SanitizeReference(reference string) string {
	var b strings.Builder
	for i := 0; i < len(reference) && b.Len() < maxReferenceLen; i++ {
		c := reference[i]
		if isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return emptyReference
	}
	return b.String()
}

func normalizeText(s string, limit int) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(stripped)) {
		if r < 0x20 || r > 0x7E {
			continue
		}
		if b.Len() == limit {
			break
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
