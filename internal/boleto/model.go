package boleto

import (
	"time"

	"gorm.io/gorm"
)

// Status de um boleto.
const (
	StatusGerado    = "GENERATED"
	StatusErro      = "ERROR"
	StatusPago      = "PAID"
	StatusCancelado = "CANCELLED"
)

// Boleto é o registro de emissão de um pagamento. O índice único em
// PagamentoID garante no máximo um boleto por parcela mesmo com emissões
// concorrentes; a resposta bruta do banco fica guardada para auditoria.
type Boleto struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PagamentoID    uint   `gorm:"not null;uniqueIndex" json:"pagamentoId"`
	Banco          Banco  `gorm:"size:30;not null" json:"banco"`
	NossoNumero    string `gorm:"size:100;uniqueIndex:,where:nosso_numero <> ''" json:"nossoNumero"`
	CodigoBarras   string `gorm:"size:54" json:"codigoBarras"`
	LinhaDigitavel string `gorm:"size:54" json:"linhaDigitavel"`
	PdfURL         string `gorm:"size:500" json:"pdfUrl"`
	Status         string `gorm:"size:20;not null" json:"status"`
	RespostaBanco  string `gorm:"type:text" json:"-"`
	MensagemErro   string `json:"mensagemErro,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Boleto{})
}
