package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"LOJA_PIX_GO/pix"
)

// ErrMissingEnv indica uma variável obrigatória não definida
var ErrMissingEnv = errors.New("config: variável de ambiente não definida")

// LoadEnv carrega as variáveis de ambiente do arquivo .env
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente padrão.")
	}
}

func required(name string) (string, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, name)
	}
	return v, nil
}

func withDefault(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// GetDatabaseURL retorna a URL de conexão com o banco de dados
func GetDatabaseURL() (string, error) {
	return required("DATABASE_URL")
}

// GetPortServerStart retorna a porta do servidor HTTP (padrão 8080)
func GetPortServerStart() string {
	return withDefault("SERVER_PORT", "8080")
}

// GetJwtSecret retorna a chave usada para assinar os tokens de login
func GetJwtSecret() ([]byte, error) {
	secret, err := required("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

// GetCorsOrigin retorna a origem liberada para o frontend
func GetCorsOrigin() string {
	return withDefault("CORS_ORIGIN", "http://localhost")
}

// GetLogLevel retorna o nível de log (debug, info, warn, error)
func GetLogLevel() string {
	return strings.ToLower(withDefault("LOG_LEVEL", "info"))
}

// GetPixConfig monta a identidade do recebedor do PIX estático
func GetPixConfig() (pix.Config, error) {
	key, err := required("PIX_KEY")
	if err != nil {
		return pix.Config{}, err
	}
	name, err := required("PIX_MERCHANT_NAME")
	if err != nil {
		return pix.Config{}, err
	}
	city, err := required("PIX_MERCHANT_CITY")
	if err != nil {
		return pix.Config{}, err
	}
	return pix.Config{Key: key, MerchantName: name, MerchantCity: city}, nil
}

// EfiEnabled indica se as cobranças dinâmicas pela Efí estão habilitadas
func EfiEnabled() bool {
	enabled, err := strconv.ParseBool(withDefault("EFI_ENABLED", "false"))
	return err == nil && enabled
}

// GetEfiPixKey retorna a chave PIX cadastrada na Efí para cobranças dinâmicas
func GetEfiPixKey() string {
	return withDefault("EFI_PIX_KEY", os.Getenv("PIX_KEY"))
}

// GetCredentials monta o mapa de credenciais esperado pelo SDK da Efí
func GetCredentials() map[string]interface{} {
	// Converte SANDBOX para booleano
	sandbox, err := strconv.ParseBool(os.Getenv("SANDBOX"))
	if err != nil {
		log.Printf("Erro ao converter SANDBOX para booleano: %v. Usando false como padrão.", err)
		sandbox = false
	}

	// Converte TIMEOUT para inteiro
	timeout, err := strconv.Atoi(os.Getenv("TIMEOUT"))
	if err != nil {
		timeout = 30
	}

	return map[string]interface{}{
		"client_id":     os.Getenv("CLIENT_ID"),
		"client_secret": os.Getenv("CLIENT_SECRET"),
		"sandbox":       sandbox,
		"timeout":       timeout,
		"CA":            os.Getenv("CA_PEM"),
		"Key":           os.Getenv("KEY_PEM"),
	}
}
