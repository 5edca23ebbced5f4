package grupopagamento

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GrupoPagamento agrupa as parcelas de uma mesma cobrança. O pagador pode
// ser diferente do cliente (ex.: um avalista). As taxas são copiadas do
// cliente na criação quando não informadas; depois disso o grupo é a fonte.
type GrupoPagamento struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	ClienteID        uint             `gorm:"not null;index" json:"clienteId"`
	Nome             string           `gorm:"size:100" json:"nome"`
	DocumentoPagador string           `gorm:"size:20;not null" json:"documentoPagador"`
	TelefonePagador  string           `gorm:"size:20" json:"telefonePagador"`
	TotalParcelas    int              `gorm:"not null" json:"totalParcelas"`
	TaxaMulta        *decimal.Decimal `gorm:"type:numeric(10,4)" json:"taxaMulta"`
	TaxaJurosMensal  *decimal.Decimal `gorm:"type:numeric(10,4)" json:"taxaJurosMensal"`
	DataCriacao      time.Time        `json:"dataCriacao"`
	Observacao       string           `json:"observacao"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&GrupoPagamento{})
}
