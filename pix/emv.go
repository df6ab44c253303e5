package pix

import "fmt"

// IDs dos campos do BR Code (EMV-QRCPS-MPM) usados pela loja
const (
	idPayloadFormat       = "00"
	idInitiationMethod    = "01"
	idMerchantAccount     = "26"
	idMerchantCategory    = "52"
	idTransactionCurrency = "53"
	idTransactionAmount   = "54"
	idCountryCode         = "58"
	idMerchantName        = "59"
	idMerchantCity        = "60"
	idAdditionalData      = "62"
	idCRC                 = "63"

	// subcampos do 26
	idGUI    = "00"
	idPixKey = "01"

	// subcampo do 62
	idReferenceLabel = "05"
)

const maxFieldLength = 99

// Field monta um campo TLV: ID de 2 dígitos, tamanho com 2 dígitos e o valor
func Field(id, value string) (string, error) {
	if len(id) != 2 || !isDigit(id[0]) || !isDigit(id[1]) {
		return "", fmt.Errorf("%w: id %q", ErrEncoding, id)
	}
	if len(value) > maxFieldLength {
		return "", fmt.Errorf("%w: campo %s com %d bytes", ErrEncoding, id, len(value))
	}
	return fmt.Sprintf("%s%02d%s", id, len(value), value), nil
}

// fieldWriter acumula campos e guarda o primeiro erro
type fieldWriter struct {
	buf []byte
	err error
}

func (w *fieldWriter) add(id, value string) {
	if w.err != nil {
		return
	}
	f, err := Field(id, value)
	if err != nil {
		w.err = err
		return
	}
	w.buf = append(w.buf, f...)
}

func (w *fieldWriter) String() string { return string(w.buf) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
