package pagamento

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, p *Pagamento) error
	CriarEmLote(db *gorm.DB, pagamentos []*Pagamento) error
	BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error)
	ListarTodos(db *gorm.DB) ([]Pagamento, error)
	ListarFiltrados(db *gorm.DB, clienteID *uint, status *string, inicio, fim time.Time) ([]Pagamento, error)
	ListarVencidos(db *gorm.DB, clienteID *uint) ([]Pagamento, error)
	Atualizar(db *gorm.DB, p *Pagamento) error
	MarcarVencidos(db *gorm.DB, hoje time.Time) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Pagamento) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) CriarEmLote(db *gorm.DB, pagamentos []*Pagamento) error {
	if len(pagamentos) == 0 {
		return nil
	}
	return db.Create(pagamentos).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error) {
	var p Pagamento
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := db.Order("data_vencimento ASC").Find(&pagamentos).Error
	return pagamentos, err
}

// ListarFiltrados busca pagamentos por cliente, status e janela de
// vencimento. A janela é meio-aberta: inicio inclusivo, fim exclusivo.
// clienteID e status são opcionais.
func (r *repositoryImpl) ListarFiltrados(db *gorm.DB, clienteID *uint, status *string, inicio, fim time.Time) ([]Pagamento, error) {
	q := db.Where("data_vencimento >= ? AND data_vencimento < ?", inicio, fim)
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var pagamentos []Pagamento
	err := q.Order("data_vencimento ASC").Find(&pagamentos).Error
	return pagamentos, err
}

// ListarVencidos busca todos os pagamentos com status OVERDUE,
// opcionalmente restritos a um cliente.
func (r *repositoryImpl) ListarVencidos(db *gorm.DB, clienteID *uint) ([]Pagamento, error) {
	q := db.Where("status = ?", StatusVencido)
	if clienteID != nil {
		q = q.Where("cliente_id = ?", *clienteID)
	}
	var pagamentos []Pagamento
	err := q.Order("data_vencimento ASC").Find(&pagamentos).Error
	return pagamentos, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, p *Pagamento) error {
	return db.Save(p).Error
}

// MarcarVencidos transiciona PENDING -> OVERDUE para tudo que venceu antes de
// hoje, em um único UPDATE. Retorna o número de linhas afetadas.
func (r *repositoryImpl) MarcarVencidos(db *gorm.DB, hoje time.Time) (int64, error) {
	res := db.Model(&Pagamento{}).
		Where("data_vencimento < ? AND status = ?", hoje, StatusPendente).
		Update("status", StatusVencido)
	return res.RowsAffected, res.Error
}
