package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carrega as variáveis de ambiente da aplicação.
type Config struct {
	Porta       string
	DatabaseDSN string
	LogLevel    string

	JWTSecret     string
	AuthEmail     string
	AuthSenha     string
	AuthSenhaHash string

	// Integração com o Banco Inter
	BancoMockHabilitado bool
	InterAPIURL         string
	InterOAuthURL       string
	InterClientID       string
	InterClientSecret   string
	InterEscopos        string
	InterTimeoutConexao time.Duration
	InterTimeoutLeitura time.Duration
}

// NewConfig monta a configuração a partir das variáveis de ambiente.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Porta:       getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=cpsystem port=5432 sslmode=disable"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		AuthEmail:     getEnv("AUTH_EMAIL", ""),
		AuthSenha:     getEnv("AUTH_PASSWORD", ""),
		AuthSenhaHash: getEnv("AUTH_PASSWORD_HASH", ""),

		BancoMockHabilitado: getEnvBool("BANK_MOCK_ENABLED", false),
		InterAPIURL:         getEnv("BANK_INTER_API_URL", "https://cdpj.partners.bancointer.com.br"),
		InterOAuthURL:       getEnv("BANK_INTER_OAUTH_URL", "https://cdpj.partners.bancointer.com.br/oauth/v2/token"),
		InterClientID:       getEnv("BANK_INTER_CLIENT_ID", ""),
		InterClientSecret:   getEnv("BANK_INTER_CLIENT_SECRET", ""),
		InterEscopos:        getEnv("BANK_INTER_SCOPES", "boleto-cobranca.read boleto-cobranca.write"),
		InterTimeoutConexao: getEnvDuration("BANK_INTER_CONNECT_TIMEOUT", 10*time.Second),
		InterTimeoutLeitura: getEnvDuration("BANK_INTER_READ_TIMEOUT", 30*time.Second),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET é obrigatória")
	}
	if cfg.AuthEmail == "" {
		return nil, fmt.Errorf("AUTH_EMAIL é obrigatória")
	}
	if cfg.AuthSenha == "" && cfg.AuthSenhaHash == "" {
		return nil, fmt.Errorf("AUTH_PASSWORD ou AUTH_PASSWORD_HASH é obrigatória")
	}
	if !cfg.BancoMockHabilitado && (cfg.InterClientID == "" || cfg.InterClientSecret == "") {
		return nil, fmt.Errorf("credenciais do Banco Inter são obrigatórias quando o mock está desativado")
	}

	return cfg, nil
}

func getEnv(key, padrao string) string {
	if valor, ok := os.LookupEnv(key); ok {
		return valor
	}
	return padrao
}

func getEnvBool(key string, padrao bool) bool {
	valor, ok := os.LookupEnv(key)
	if !ok {
		return padrao
	}
	b, err := strconv.ParseBool(valor)
	if err != nil {
		return padrao
	}
	return b
}

func getEnvDuration(key string, padrao time.Duration) time.Duration {
	valor, ok := os.LookupEnv(key)
	if !ok {
		return padrao
	}
	d, err := time.ParseDuration(valor)
	if err != nil {
		return padrao
	}
	return d
}
