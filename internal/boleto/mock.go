package boleto

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// dataBaseFator é a data base do fator de vencimento FEBRABAN.
var dataBaseFator = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

// EstrategiaMock gera boletos fictícios com formato válido, sem tocar a
// rede. Declara o mesmo banco da estratégia real para sobrescrevê-la quando
// o mock está habilitado. O delay artificial mantém a latência parecida com
// a de uma chamada de verdade.
type EstrategiaMock struct {
	log *logrus.Logger
}

func NewEstrategiaMock(log *logrus.Logger) *EstrategiaMock {
	return &EstrategiaMock{log: log}
}

func (e *EstrategiaMock) Banco() Banco {
	return BancoInter
}

func (e *EstrategiaMock) GerarBoleto(ctx context.Context, req SolicitacaoBoleto) RespostaBancoAPI {
	e.log.Warnf("MODO TESTE ATIVO - boleto mock para pagamento %d (valor %s, vencimento %s)",
		req.PagamentoID, req.Valor, req.DataVencimento.Format("2006-01-02"))

	simularDelayDeRede(ctx)

	nossoNumero := gerarNossoNumeroMock(req)
	codigoBarras := gerarCodigoBarrasMock(req)
	linhaDigitavel := GerarLinhaDigitavel(codigoBarras)
	pdfURL := fmt.Sprintf("https://mock-banco-inter.test/api/boleto/pdf/%s", nossoNumero)

	resposta := montarRespostaMock(nossoNumero, codigoBarras, linhaDigitavel, pdfURL, req)

	e.log.Infof("Boleto mock gerado: nossoNumero=%s barras=%s", nossoNumero, codigoBarras)

	return RespostaBancoAPI{
		Sucesso:        true,
		NossoNumero:    nossoNumero,
		CodigoBarras:   codigoBarras,
		LinhaDigitavel: linhaDigitavel,
		PdfURL:         pdfURL,
		RespostaBruta:  resposta,
	}
}

// simularDelayDeRede dorme entre 300 e 800ms, respeitando cancelamento.
func simularDelayDeRede(ctx context.Context) {
	delay := time.Duration(300+rand.Intn(500)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

func gerarNossoNumeroMock(req SolicitacaoBoleto) string {
	timestamp := fmt.Sprintf("%d", time.Now().UnixMilli())[5:]
	aleatorio := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("MOCK-%s-%d-%s", timestamp, req.PagamentoID, aleatorio)
}

// gerarCodigoBarrasMock monta um código de barras de 44 dígitos no layout
// FEBRABAN: banco(3) + moeda(1) + DV(1) + fator de vencimento(4) +
// valor em centavos(10) + campo livre(25).
func gerarCodigoBarrasMock(req SolicitacaoBoleto) string {
	banco := BancoInter.Codigo()
	moeda := "9"
	fator := FatorVencimento(req.DataVencimento)
	valor := formatarValor(req)

	// Campo livre pseudo-aleatório derivado do ID do pagamento.
	campoLivre := fmt.Sprintf("%025d", int64(req.PagamentoID)*1000000+time.Now().UnixMilli()%1000000)

	semDV := banco + moeda + fator + valor + campoLivre
	dv := calcularDV(semDV)

	return banco + moeda + dv + fator + valor + campoLivre
}

// GerarLinhaDigitavel converte um código de barras de 44 dígitos na linha
// digitável: três campos com DV módulo 11 embutido, o DV geral e o bloco
// fator de vencimento + valor.
func GerarLinhaDigitavel(codigoBarras string) string {
	if len(codigoBarras) < 44 {
		codigoBarras += strings.Repeat("0", 44-len(codigoBarras))
	}

	banco := codigoBarras[0:3]
	moeda := codigoBarras[3:4]
	dvGeral := codigoBarras[4:5]
	fatorValor := codigoBarras[5:19]
	campoLivre := codigoBarras[19:44]

	campo1 := banco + moeda + campoLivre[0:5]
	dv1 := calcularDV(campo1)

	campo2 := campoLivre[5:15]
	dv2 := calcularDV(campo2)

	campo3 := campoLivre[15:25]
	dv3 := calcularDV(campo3)

	return fmt.Sprintf("%s.%s%s %s.%s%s %s.%s%s %s %s",
		campo1[0:5], campo1[5:9], dv1,
		campo2[0:5], campo2[5:10], dv2,
		campo3[0:5], campo3[5:10], dv3,
		dvGeral, fatorValor)
}

// FatorVencimento conta os dias desde 07/10/1997, com 4 dígitos.
func FatorVencimento(vencimento time.Time) string {
	ano, mes, dia := vencimento.Date()
	v := time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
	dias := int64(v.Sub(dataBaseFator).Hours() / 24)
	return fmt.Sprintf("%04d", dias%10000)
}

func formatarValor(req SolicitacaoBoleto) string {
	centavos := req.Valor.Shift(2).Round(0).IntPart()
	return fmt.Sprintf("%010d", centavos%10000000000)
}

// calcularDV aplica módulo 11 com pesos 2 a 9 da direita para a esquerda.
func calcularDV(campo string) string {
	soma := 0
	multiplicador := 2
	for i := len(campo) - 1; i >= 0; i-- {
		soma += int(campo[i]-'0') * multiplicador
		if multiplicador == 9 {
			multiplicador = 2
		} else {
			multiplicador++
		}
	}

	resto := soma % 11
	dv := 11 - resto
	if dv == 0 || dv == 10 || dv == 11 {
		dv = 1
	}
	return fmt.Sprintf("%d", dv)
}

func montarRespostaMock(nossoNumero, codigoBarras, linhaDigitavel, pdfURL string, req SolicitacaoBoleto) string {
	corpo := map[string]any{
		"nossoNumero":    nossoNumero,
		"codigoBarras":   codigoBarras,
		"linhaDigitavel": linhaDigitavel,
		"pdfBoleto":      pdfURL,
		"dataEmissao":    time.Now().Format("2006-01-02"),
		"dataVencimento": req.DataVencimento.Format("2006-01-02"),
		"valorNominal":   req.Valor,
		"pagador": map[string]string{
			"cpfCnpj":  req.DocumentoPagador,
			"nome":     req.NomePagador,
			"telefone": req.TelefonePagador,
		},
		"mock":     true,
		"ambiente": "teste",
	}
	b, _ := json.Marshal(corpo)
	return string(b)
}
