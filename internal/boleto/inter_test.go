package boleto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gustavocaixetarosa/cp/internal/integrations/inter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// novoInterTeste sobe um servidor fake de OAuth e de cobrança e devolve a
// estratégia apontando para ele.
func novoInterTeste(t *testing.T, cobranca http.HandlerFunc) (*EstrategiaInter, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-teste", "expires_in": 3600})
	})
	mux.HandleFunc("/cobranca/v3/cobrancas", cobranca)
	servidor := httptest.NewServer(mux)
	t.Cleanup(servidor.Close)

	cliente := inter.NewClient(inter.Config{
		APIURL:         servidor.URL,
		OAuthURL:       servidor.URL + "/oauth/v2/token",
		ClientID:       "id",
		ClientSecret:   "segredo",
		Escopos:        "boleto-cobranca.write",
		TimeoutConexao: 5 * time.Second,
		TimeoutLeitura: 10 * time.Second,
	}, logTeste())
	return NewEstrategiaInter(cliente, logTeste()), servidor
}

func solicitacaoCompleta() SolicitacaoBoleto {
	multa := decimal.RequireFromString("0.02")
	juros := decimal.RequireFromString("0.03")
	return SolicitacaoBoleto{
		PagamentoID:      42,
		Valor:            decimal.RequireFromString("150.50"),
		DataVencimento:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		NomePagador:      "Gustavo Rosa",
		DocumentoPagador: "123.456.789-09",
		TelefonePagador:  "(11) 91234-5678",
		Descricao:        "12345678909-1 parcela 1/12",
		TaxaMulta:        &multa,
		TaxaJurosMensal:  &juros,
	}
}

func TestInterMontaPayloadCompleto(t *testing.T) {
	var payload map[string]any
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		w.Write([]byte(`{"nossoNumero":"00123"}`))
	})

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())
	require.True(t, resposta.Sucesso)

	assert.Equal(t, "42", payload["seuNumero"])
	assert.Equal(t, "2026-03-15", payload["dataVencimento"])
	assert.Equal(t, "SESSENTA", payload["numDiasAgenda"])
	assert.InDelta(t, 150.50, payload["valorNominal"], 0.001)

	pagador := payload["pagador"].(map[string]any)
	assert.Equal(t, "12345678909", pagador["cpfCnpj"], "documento vai só com dígitos")
	assert.Equal(t, "11912345678", pagador["telefone"], "telefone vai só com dígitos")
	assert.Equal(t, "Gustavo Rosa", pagador["nome"])

	mensagem := payload["mensagem"].(map[string]any)
	assert.Equal(t, "12345678909-1 parcela 1/12", mensagem["linha1"])

	multa := payload["multa"].(map[string]any)
	assert.Equal(t, "PERCENTUAL", multa["codigo"])
	assert.InDelta(t, 2.0, multa["taxa"], 0.001, "taxa vai em percentual")
	assert.Equal(t, "2026-03-16", multa["data"], "multa vigora no dia seguinte ao vencimento")

	mora := payload["mora"].(map[string]any)
	assert.Equal(t, "TAXAMENSAL", mora["codigo"])
	assert.InDelta(t, 3.0, mora["taxa"], 0.001)
	assert.Equal(t, "2026-03-16", mora["data"])
}

func TestInterOmiteMultaEMoraSemTaxas(t *testing.T) {
	var payload map[string]any
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{}`))
	})

	req := solicitacaoCompleta()
	req.TaxaMulta = nil
	zero := decimal.Zero
	req.TaxaJurosMensal = &zero
	req.TelefonePagador = ""
	req.Descricao = ""

	resposta := estrategia.GerarBoleto(context.Background(), req)
	require.True(t, resposta.Sucesso)

	assert.NotContains(t, payload, "multa")
	assert.NotContains(t, payload, "mora", "taxa zero não gera mora")
	assert.NotContains(t, payload, "mensagem")
	pagador := payload["pagador"].(map[string]any)
	assert.NotContains(t, pagador, "telefone")
}

func TestInterRespostaDeSucesso(t *testing.T) {
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nossoNumero":"00123","codigoBarras":"07790001","linhaDigitavel":"077.9","pdfBoleto":"https://inter.test/pdf"}`))
	})

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())

	assert.True(t, resposta.Sucesso)
	assert.Equal(t, "00123", resposta.NossoNumero)
	assert.Equal(t, "07790001", resposta.CodigoBarras)
	assert.Equal(t, "077.9", resposta.LinhaDigitavel)
	assert.Equal(t, "https://inter.test/pdf", resposta.PdfURL)
	assert.Contains(t, resposta.RespostaBruta, "00123")
	assert.Empty(t, resposta.MensagemErro)
}

func TestInterRespostaSemNossoNumeroAindaEhSucesso(t *testing.T) {
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"EM_PROCESSAMENTO"}`))
	})

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())

	assert.True(t, resposta.Sucesso, "resposta legível do banco é emissão aceita")
	assert.Empty(t, resposta.NossoNumero)
}

func TestInterErroDoBancoViraRespostaDeFalha(t *testing.T) {
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Saldo de emissão excedido"}`, http.StatusUnprocessableEntity)
	})

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())

	assert.False(t, resposta.Sucesso)
	assert.Contains(t, resposta.MensagemErro, "Erro ao gerar boleto")
	assert.Contains(t, resposta.MensagemErro, "422")
}

func TestInterRespostaIlegivelViraFalha(t *testing.T) {
	estrategia, _ := novoInterTeste(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>misconfigured gateway</html>`))
	})

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())

	assert.False(t, resposta.Sucesso)
	assert.Contains(t, resposta.MensagemErro, "Erro ao processar resposta do banco")
	assert.Contains(t, resposta.RespostaBruta, "misconfigured")
}

func TestInterFalhaDeAutenticacao(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	})
	servidor := httptest.NewServer(mux)
	t.Cleanup(servidor.Close)

	cliente := inter.NewClient(inter.Config{
		APIURL:         servidor.URL,
		OAuthURL:       servidor.URL + "/oauth/v2/token",
		ClientID:       "id",
		ClientSecret:   "segredo",
		TimeoutConexao: 5 * time.Second,
		TimeoutLeitura: 10 * time.Second,
	}, logTeste())
	estrategia := NewEstrategiaInter(cliente, logTeste())

	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoCompleta())

	assert.False(t, resposta.Sucesso)
	assert.Contains(t, resposta.MensagemErro, "Erro ao gerar boleto")
}
