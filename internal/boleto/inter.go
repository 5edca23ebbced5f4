package boleto

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/gustavocaixetarosa/cp/internal/integrations/inter"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var naoDigito = regexp.MustCompile(`\D`)

// EstrategiaInter emite boletos pela API de cobrança do Banco Inter.
type EstrategiaInter struct {
	cliente *inter.Client
	log     *logrus.Logger
}

func NewEstrategiaInter(cliente *inter.Client, log *logrus.Logger) *EstrategiaInter {
	return &EstrategiaInter{cliente: cliente, log: log}
}

func (e *EstrategiaInter) Banco() Banco {
	return BancoInter
}

// GerarBoleto autentica, monta o payload do Inter e envia a cobrança.
// Qualquer falha (autenticação, rede, resposta ilegível) vira uma resposta
// de erro; nada é propagado como erro de programa.
func (e *EstrategiaInter) GerarBoleto(ctx context.Context, req SolicitacaoBoleto) RespostaBancoAPI {
	e.log.Infof("Gerando boleto no Banco Inter para pagamento %d", req.PagamentoID)

	token, err := e.cliente.Authenticate(ctx)
	if err != nil {
		e.log.Errorf("Erro ao autenticar com o Banco Inter para pagamento %d: %v", req.PagamentoID, err)
		return RespostaBancoAPI{Sucesso: false, MensagemErro: fmt.Sprintf("Erro ao gerar boleto: %v", err)}
	}

	payload := e.montarPayload(req)

	corpo, err := e.cliente.PostCobranca(ctx, token, payload)
	if err != nil {
		e.log.Errorf("Erro ao gerar boleto no Banco Inter para pagamento %d: %v", req.PagamentoID, err)
		return RespostaBancoAPI{Sucesso: false, MensagemErro: fmt.Sprintf("Erro ao gerar boleto: %v", err)}
	}

	return e.parseResposta(corpo)
}

// montarPayload traduz a solicitação canônica para o formato do Inter.
// Multa e mora só entram quando a taxa é positiva, com percentual (taxa x
// 100) e vigência a partir do dia seguinte ao vencimento.
func (e *EstrategiaInter) montarPayload(req SolicitacaoBoleto) map[string]any {
	// A API do Inter espera valores como números JSON; decimal.Decimal
	// serializa como string por padrão.
	payload := map[string]any{
		"seuNumero":      fmt.Sprintf("%d", req.PagamentoID),
		"valorNominal":   req.Valor.InexactFloat64(),
		"dataVencimento": req.DataVencimento.Format("2006-01-02"),
		"numDiasAgenda":  "SESSENTA",
	}

	pagador := map[string]any{
		"cpfCnpj": naoDigito.ReplaceAllString(req.DocumentoPagador, ""),
		"nome":    req.NomePagador,
	}
	if req.TelefonePagador != "" {
		pagador["telefone"] = naoDigito.ReplaceAllString(req.TelefonePagador, "")
	}
	payload["pagador"] = pagador

	if req.Descricao != "" {
		payload["mensagem"] = map[string]string{"linha1": req.Descricao}
	}

	diaSeguinte := req.DataVencimento.AddDate(0, 0, 1).Format("2006-01-02")
	cem := decimal.NewFromInt(100)

	if req.TaxaMulta != nil && req.TaxaMulta.IsPositive() {
		payload["multa"] = map[string]any{
			"codigo": "PERCENTUAL",
			"taxa":   req.TaxaMulta.Mul(cem).InexactFloat64(),
			"data":   diaSeguinte,
		}
	}
	if req.TaxaJurosMensal != nil && req.TaxaJurosMensal.IsPositive() {
		payload["mora"] = map[string]any{
			"codigo": "TAXAMENSAL",
			"taxa":   req.TaxaJurosMensal.Mul(cem).InexactFloat64(),
			"data":   diaSeguinte,
		}
	}

	return payload
}

type respostaInter struct {
	NossoNumero    string `json:"nossoNumero"`
	CodigoBarras   string `json:"codigoBarras"`
	LinhaDigitavel string `json:"linhaDigitavel"`
	PdfBoleto      string `json:"pdfBoleto"`
}

// parseResposta extrai os campos da resposta do Inter. Resposta legível é
// sucesso; campos secundários ausentes (ex.: PDF ainda não disponível)
// ficam vazios sem invalidar a emissão.
func (e *EstrategiaInter) parseResposta(corpo string) RespostaBancoAPI {
	var r respostaInter
	if err := json.Unmarshal([]byte(corpo), &r); err != nil {
		e.log.Errorf("Erro ao parsear resposta do Banco Inter: %v", err)
		return RespostaBancoAPI{
			Sucesso:       false,
			MensagemErro:  fmt.Sprintf("Erro ao processar resposta do banco: %v", err),
			RespostaBruta: corpo,
		}
	}

	return RespostaBancoAPI{
		Sucesso:        true,
		NossoNumero:    r.NossoNumero,
		CodigoBarras:   r.CodigoBarras,
		LinhaDigitavel: r.LinhaDigitavel,
		PdfURL:         r.PdfBoleto,
		RespostaBruta:  corpo,
	}
}
