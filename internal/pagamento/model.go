package pagamento

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status de um pagamento. Os valores seguem o enum persistido no banco.
const (
	StatusPendente      = "PENDING"
	StatusVencido       = "OVERDUE"
	StatusPago          = "PAID"
	StatusPagoComAtraso = "PAID_LATE"
	StatusCancelado     = "CANCELED"
)

// Pagamento representa uma parcela de um grupo de pagamento.
// ClienteID e GrupoPagamentoID são chaves estrangeiras explícitas; o
// carregamento das entidades relacionadas é feito por quem precisa delas.
type Pagamento struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ClienteID        uint   `gorm:"not null;index" json:"clienteId"`
	GrupoPagamentoID *uint  `gorm:"index" json:"grupoPagamentoId"`
	NomePagador      string `gorm:"size:50;not null" json:"nomePagador"`
	DocumentoPagador string `gorm:"size:14" json:"documentoPagador"`
	NumeroParcela    int    `gorm:"not null" json:"numeroParcela"`
	TotalParcelas    int    `gorm:"not null" json:"totalParcelas"`

	ValorOriginal    decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"valorOriginal"`
	ValorVencido     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"valorVencido"`
	DataValorVencido *time.Time       `json:"dataValorVencido"`

	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	Status         string     `gorm:"size:20;not null;index" json:"status"`
	Observacao     string     `gorm:"size:400" json:"observacao"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}

// EpochDay converte uma data para dias corridos desde 1970-01-01,
// ignorando hora e fuso.
func EpochDay(t time.Time) int64 {
	ano, mes, dia := t.Date()
	return time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// MesmaData compara apenas ano, mês e dia.
func MesmaData(a, b time.Time) bool {
	return EpochDay(a) == EpochDay(b)
}

// DerivarStatus calcula o status a partir das datas, preservando a regra de
// que um pagamento com data de pagamento nunca volta a ser pendente.
func DerivarStatus(dataVencimento time.Time, dataPagamento *time.Time, hoje time.Time) string {
	if dataPagamento != nil {
		if EpochDay(*dataPagamento) > EpochDay(dataVencimento) {
			return StatusPagoComAtraso
		}
		return StatusPago
	}
	if EpochDay(dataVencimento) < EpochDay(hoje) {
		return StatusVencido
	}
	return StatusPendente
}
