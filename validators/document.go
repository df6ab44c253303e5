package validators

import (
	"errors"
	"fmt"
	"strings"
)

// Tipos de documento aceitos no cadastro
const (
	DocumentTypeCPF  = "cpf"
	DocumentTypeCNPJ = "cnpj"
)

// ErrInvalidArgument indica um argumento que não pode ser processado (ex.: tipo de documento desconhecido)
var ErrInvalidArgument = errors.New("validators: argumento inválido")

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits remove tudo que não for dígito decimal
func OnlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidateCPF verifica tamanho e os dois dígitos verificadores de um CPF
func ValidateCPF(raw string) bool {
	digits := toInts(OnlyDigits(raw))
	if len(digits) != 11 || allEqual(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	if (sum*10%11)%10 != digits[9] {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	return (sum*10%11)%10 == digits[10]
}

// ValidateCNPJ verifica tamanho e os dois dígitos verificadores de um CNPJ
func ValidateCNPJ(raw string) bool {
	digits := toInts(OnlyDigits(raw))
	if len(digits) != 14 || allEqual(digits) {
		return false
	}
	if cnpjCheckDigit(digits, cnpjWeights1) != digits[12] {
		return false
	}
	return cnpjCheckDigit(digits, cnpjWeights2) == digits[13]
}

func cnpjCheckDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	d := 11 - sum%11
	if d > 9 {
		d = 0
	}
	return d
}

// FormatCPF devolve o CPF no formato XXX.XXX.XXX-XX. Não valida os dígitos verificadores;
// entradas que não tenham 11 dígitos retornam string vazia.
func FormatCPF(raw string) string {
	d := OnlyDigits(raw)
	if len(d) != 11 {
		return ""
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ devolve o CNPJ no formato XX.XXX.XXX/XXXX-XX
func FormatCNPJ(raw string) string {
	d := OnlyDigits(raw)
	if len(d) != 14 {
		return ""
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// ValidateDocument valida o número conforme o tipo ("cpf" ou "cnpj")
func ValidateDocument(kind, raw string) (bool, error) {
	switch strings.ToLower(kind) {
	case DocumentTypeCPF:
		return ValidateCPF(raw), nil
	case DocumentTypeCNPJ:
		return ValidateCNPJ(raw), nil
	}
	return false, fmt.Errorf("%w: tipo de documento %q", ErrInvalidArgument, kind)
}

// FormatDocument formata o número conforme o tipo ("cpf" ou "cnpj")
func FormatDocument(kind, raw string) (string, error) {
	switch strings.ToLower(kind) {
	case DocumentTypeCPF:
		return FormatCPF(raw), nil
	case DocumentTypeCNPJ:
		return FormatCNPJ(raw), nil
	}
	return "", fmt.Errorf("%w: tipo de documento %q", ErrInvalidArgument, kind)
}

func toInts(digits string) []int {
	out := make([]int, len(digits))
	for i := 0; i < len(digits); i++ {
		out[i] = int(digits[i] - '0')
	}
	return out
}

func allEqual(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}
