package boleto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SolicitacaoBoleto é a forma canônica de um pedido de emissão, montada pelo
// serviço a partir do pagamento, do grupo e do cliente. As estratégias
// traduzem isso para o formato de cada banco.
type SolicitacaoBoleto struct {
	PagamentoID      uint
	Valor            decimal.Decimal
	DataVencimento   time.Time
	NomePagador      string
	DocumentoPagador string
	TelefonePagador  string
	Descricao        string
	TaxaMulta        *decimal.Decimal
	TaxaJurosMensal  *decimal.Decimal
}

// RespostaBancoAPI é o resultado canônico de uma tentativa de emissão.
// Falha do banco não é erro de programa: vem descrita aqui e é persistida.
type RespostaBancoAPI struct {
	Sucesso        bool
	NossoNumero    string
	CodigoBarras   string
	LinhaDigitavel string
	PdfURL         string
	RespostaBruta  string
	MensagemErro   string
}
