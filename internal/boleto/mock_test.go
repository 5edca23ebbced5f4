package boleto

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solicitacaoDeTeste() SolicitacaoBoleto {
	return SolicitacaoBoleto{
		PagamentoID:      42,
		Valor:            decimal.RequireFromString("150.50"),
		DataVencimento:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		NomePagador:      "Gustavo Rosa",
		DocumentoPagador: "123.456.789-09",
		TelefonePagador:  "(11) 91234-5678",
		Descricao:        "12345678909-1",
	}
}

func TestMockGeraCodigoBarrasCom44Digitos(t *testing.T) {
	codigo := gerarCodigoBarrasMock(solicitacaoDeTeste())

	require.Len(t, codigo, 44)
	for _, c := range codigo {
		assert.True(t, c >= '0' && c <= '9', "código de barras deve ser só dígitos: %s", codigo)
	}
	assert.True(t, strings.HasPrefix(codigo, "0779"), "deve começar com banco 077 e moeda 9")
}

func TestMockCodigoBarrasDeterministicoForaDoCampoLivre(t *testing.T) {
	req := solicitacaoDeTeste()
	a := gerarCodigoBarrasMock(req)
	b := gerarCodigoBarrasMock(req)

	// Banco, moeda, fator de vencimento e valor não dependem do filler.
	assert.Equal(t, a[0:4], b[0:4])
	assert.Equal(t, a[5:19], b[5:19])
}

func TestMockFatorVencimentoEValor(t *testing.T) {
	req := solicitacaoDeTeste()
	codigo := gerarCodigoBarrasMock(req)

	assert.Equal(t, FatorVencimento(req.DataVencimento), codigo[5:9])
	// 150.50 em centavos com 10 dígitos
	assert.Equal(t, "0000015050", codigo[9:19])
}

func TestGerarLinhaDigitavel(t *testing.T) {
	codigo := gerarCodigoBarrasMock(solicitacaoDeTeste())
	linha := GerarLinhaDigitavel(codigo)

	partes := strings.Split(linha, " ")
	require.Len(t, partes, 5)

	// Três campos com DV embutido, no formato NNNNN.NNNNN
	for _, campo := range partes[0:3] {
		pedacos := strings.Split(campo, ".")
		require.Len(t, pedacos, 2)
		assert.Len(t, pedacos[0], 5)
		assert.Len(t, pedacos[1], 5)
	}
	// DV geral com um dígito e bloco fator+valor com 14
	assert.Len(t, partes[3], 1)
	assert.Len(t, partes[4], 14)
	assert.Equal(t, codigo[5:19], partes[4])
	assert.Equal(t, codigo[4:5], partes[3])
}

func TestMockGerarBoletoRespostaCompleta(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	estrategia := NewEstrategiaMock(log)

	inicio := time.Now()
	resposta := estrategia.GerarBoleto(context.Background(), solicitacaoDeTeste())
	duracao := time.Since(inicio)

	require.True(t, resposta.Sucesso)
	assert.True(t, strings.HasPrefix(resposta.NossoNumero, "MOCK-"))
	assert.Len(t, resposta.CodigoBarras, 44)
	assert.NotEmpty(t, resposta.LinhaDigitavel)
	assert.Contains(t, resposta.PdfURL, resposta.NossoNumero)
	assert.Contains(t, resposta.RespostaBruta, `"mock":true`)
	// Delay artificial de 300-800ms preservado
	assert.GreaterOrEqual(t, duracao, 300*time.Millisecond)

	assert.Equal(t, BancoInter, estrategia.Banco())
}

func TestCalcularDVModulo11(t *testing.T) {
	// Pesos 2..9 da direita para a esquerda; 0, 10 e 11 viram 1.
	assert.Equal(t, "1", calcularDV("0"))
	dv := calcularDV("001905009")
	assert.Len(t, dv, 1)
	assert.True(t, dv[0] >= '1' && dv[0] <= '9')
}
