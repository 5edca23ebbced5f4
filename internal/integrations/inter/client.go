// Package inter integra com a API de cobrança do Banco Inter: troca de
// credenciais por token OAuth2 (client credentials) e emissão de cobranças.
package inter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Config agrupa as credenciais e endpoints da integração.
type Config struct {
	APIURL         string
	OAuthURL       string
	ClientID       string
	ClientSecret   string
	Escopos        string
	TimeoutConexao time.Duration
	TimeoutLeitura time.Duration
}

// Client fala com a API do Inter. O token fica em cache em um único slot;
// duas renovações concorrentes são toleradas, a última escrita vence.
type Client struct {
	cfg    Config
	client *http.Client
	log    *logrus.Logger

	mu       sync.Mutex
	token    string
	expiraEm time.Time
}

// NewClient inicializa o cliente com os timeouts de conexão e leitura da
// configuração.
func NewClient(cfg Config, log *logrus.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.TimeoutLeitura,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.TimeoutConexao}).DialContext,
			},
		},
		log: log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate devolve um token de acesso válido, renovando via OAuth2
// quando o cache expirou. O token é renovado 5 minutos antes de expirar.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.expiraEm) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	c.log.Info("Obtendo novo token OAuth2 do Banco Inter")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", c.cfg.Escopos)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição oauth: %w", err)
	}
	credenciais := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credenciais)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao autenticar com o Banco Inter: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta oauth: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("oauth do Banco Inter retornou status %d: %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta oauth: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("resposta oauth sem access_token")
	}

	c.mu.Lock()
	c.token = tr.AccessToken
	c.expiraEm = time.Now().Add(time.Duration(tr.ExpiresIn-300) * time.Second)
	c.mu.Unlock()

	c.log.Infof("Token OAuth2 obtido com sucesso. Válido por %d segundos", tr.ExpiresIn)
	return tr.AccessToken, nil
}

// PostCobranca envia o payload de emissão para /cobranca/v3/cobrancas com
// Bearer auth e devolve o corpo bruto da resposta. Sem retry: falha de rede
// ou status fora de 2xx viram erro para o chamador decidir.
func (c *Client) PostCobranca(ctx context.Context, token string, payload any) (string, error) {
	corpo, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL+"/cobranca/v3/cobrancas", bytes.NewReader(corpo))
	if err != nil {
		return "", fmt.Errorf("erro ao montar requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na chamada ao Banco Inter: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("Banco Inter retornou status %d: %s", resp.StatusCode, body)
	}

	return string(body), nil
}
