package pix

import (
	"fmt"
	"strings"
)

// crcPrefix é o ID+tamanho do campo 63, que entra no cálculo do próprio CRC
const crcPrefix = idCRC + "04"

// CRC16 calcula o CRC16/CCITT-FALSE (poly 0x1021, inicial 0xFFFF, sem XOR final)
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// AppendCRC acrescenta "6304" e o checksum em 4 dígitos hexadecimais maiúsculos
func AppendCRC(payload string) string {
	withPrefix := payload + crcPrefix
	return withPrefix + fmt.Sprintf("%04X", CRC16([]byte(withPrefix)))
}

// VerifyCRC confere se os 4 últimos caracteres são o CRC do restante do código
func VerifyCRC(code string) bool {
	if len(code) < len(crcPrefix)+4 {
		return false
	}
	body, sum := code[:len(code)-4], code[len(code)-4:]
	if !strings.HasSuffix(body, crcPrefix) {
		return false
	}
	return strings.EqualFold(sum, fmt.Sprintf("%04X", CRC16([]byte(body))))
}
