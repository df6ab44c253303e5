package pix

import "errors"

// Erros sentinela do gerador de BR Code
var (
	// ErrEncoding indica um campo TLV que não cabe no formato (ID inválido ou valor com mais de 99 bytes)
	ErrEncoding = errors.New("pix: erro de codificação do campo")

	// ErrInvalidAmount indica valor não positivo ou com mais de duas casas decimais
	ErrInvalidAmount = errors.New("pix: valor inválido")

	// ErrInvalidConfig indica chave, nome ou cidade do recebedor ausentes
	ErrInvalidConfig = errors.New("pix: configuração do recebedor inválida")
)
