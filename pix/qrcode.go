package pix

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize é o lado da imagem PNG em pixels
const DefaultQRSize = 256

// EncodePNG gera a imagem do QR Code para o conteúdo do BR Code
func EncodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("pix: erro ao gerar QR Code: %w", err)
	}
	return png, nil
}
