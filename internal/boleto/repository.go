package boleto

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, b *Boleto) error
	BuscarPorPagamento(db *gorm.DB, pagamentoID uint) (*Boleto, error)
	ExistePorPagamento(db *gorm.DB, pagamentoID uint) (bool, error)
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, b *Boleto) error {
	return db.Create(b).Error
}

func (r *repositoryImpl) BuscarPorPagamento(db *gorm.DB, pagamentoID uint) (*Boleto, error) {
	var b Boleto
	err := db.Where("pagamento_id = ?", pagamentoID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repositoryImpl) ExistePorPagamento(db *gorm.DB, pagamentoID uint) (bool, error) {
	_, err := r.BuscarPorPagamento(db, pagamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	return db.Delete(&Boleto{}, id).Error
}
