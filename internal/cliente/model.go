package cliente

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cliente é o titular dos grupos de pagamento. As taxas aqui definidas são
// os padrões copiados para cada grupo na criação.
type Cliente struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Nome            string           `gorm:"size:100;not null" json:"nome"`
	Endereco        string           `gorm:"not null" json:"endereco"`
	Telefone        string           `gorm:"size:15" json:"telefone"`
	Documento       string           `gorm:"size:14;not null;uniqueIndex" json:"documento"`
	Banco           string           `gorm:"size:100" json:"banco"`
	TaxaMulta       *decimal.Decimal `gorm:"type:numeric(10,4)" json:"taxaMulta"`
	TaxaJurosMensal *decimal.Decimal `gorm:"type:numeric(10,4)" json:"taxaJurosMensal"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
