package inter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logTeste() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func novoClienteTeste(oauthURL, apiURL string) *Client {
	return NewClient(Config{
		APIURL:         apiURL,
		OAuthURL:       oauthURL,
		ClientID:       "cliente-teste",
		ClientSecret:   "segredo-teste",
		Escopos:        "boleto-cobranca.write",
		TimeoutConexao: 5 * time.Second,
		TimeoutLeitura: 10 * time.Second,
	}, logTeste())
}

func TestAuthenticateEnviaCredenciaisEmBasicAuth(t *testing.T) {
	var recebido *http.Request
	var corpo string
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r
		b, _ := io.ReadAll(r.Body)
		corpo = string(b)
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	}))
	defer servidor.Close()

	c := novoClienteTeste(servidor.URL, "")

	token, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NotNil(t, recebido)
	assert.Equal(t, http.MethodPost, recebido.Method)
	assert.Equal(t, "application/x-www-form-urlencoded", recebido.Header.Get("Content-Type"))
	assert.Equal(t, "Basic Y2xpZW50ZS10ZXN0ZTpzZWdyZWRvLXRlc3Rl", recebido.Header.Get("Authorization"))
	assert.Contains(t, corpo, "grant_type=client_credentials")
	assert.Contains(t, corpo, "scope=boleto-cobranca.write")
}

func TestAuthenticateReutilizaTokenEmCache(t *testing.T) {
	var trocas atomic.Int32
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trocas.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-cache", "expires_in": 3600})
	}))
	defer servidor.Close()

	c := novoClienteTeste(servidor.URL, "")

	for i := 0; i < 5; i++ {
		token, err := c.Authenticate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-cache", token)
	}
	assert.EqualValues(t, 1, trocas.Load(), "token válido não deve gerar nova troca")
}

func TestAuthenticateRenovaTokenProximoDeExpirar(t *testing.T) {
	var trocas atomic.Int32
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := trocas.Add(1)
		// expires_in menor que a margem de 300s deixa o token já vencido.
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-" + string(rune('0'+n)),
			"expires_in":   60,
		})
	}))
	defer servidor.Close()

	c := novoClienteTeste(servidor.URL, "")

	primeiro, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	segundo, err := c.Authenticate(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, trocas.Load())
	assert.NotEqual(t, primeiro, segundo)
}

func TestAuthenticateStatusDeErro(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer servidor.Close()

	c := novoClienteTeste(servidor.URL, "")

	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestAuthenticateRespostaSemToken(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"expires_in": 3600})
	}))
	defer servidor.Close()

	c := novoClienteTeste(servidor.URL, "")

	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
}

func TestPostCobrancaEnviaBearerEPayload(t *testing.T) {
	var recebido *http.Request
	var corpo map[string]any
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recebido = r
		require.NoError(t, json.NewDecoder(r.Body).Decode(&corpo))
		w.Write([]byte(`{"nossoNumero":"00123"}`))
	}))
	defer servidor.Close()

	c := novoClienteTeste("", servidor.URL)

	resposta, err := c.PostCobranca(context.Background(), "tok-abc", map[string]any{
		"seuNumero":    "42",
		"valorNominal": 150.50,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"nossoNumero":"00123"}`, resposta)

	require.NotNil(t, recebido)
	assert.Equal(t, "/cobranca/v3/cobrancas", recebido.URL.Path)
	assert.Equal(t, "Bearer tok-abc", recebido.Header.Get("Authorization"))
	assert.Equal(t, "application/json", recebido.Header.Get("Content-Type"))
	assert.Equal(t, "42", corpo["seuNumero"])
}

func TestPostCobrancaStatusDeErro(t *testing.T) {
	servidor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Requisição inválida"}`, http.StatusBadRequest)
	}))
	defer servidor.Close()

	c := novoClienteTeste("", servidor.URL)

	_, err := c.PostCobranca(context.Background(), "tok-abc", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Requisição inválida")
}
