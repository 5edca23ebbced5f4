package grupopagamento

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, g *GrupoPagamento) error
	ListarTodos(db *gorm.DB) ([]GrupoPagamento, error)
	BuscarPorID(db *gorm.DB, id uint) (*GrupoPagamento, error)
	BuscarPorIDs(db *gorm.DB, ids []uint) ([]GrupoPagamento, error)
	ContarPorDocumento(db *gorm.DB, documento string) (int64, error)
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, g *GrupoPagamento) error {
	return db.Create(g).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]GrupoPagamento, error) {
	var grupos []GrupoPagamento
	err := db.Order("data_criacao DESC").Find(&grupos).Error
	return grupos, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*GrupoPagamento, error) {
	var g GrupoPagamento
	if err := db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repositoryImpl) BuscarPorIDs(db *gorm.DB, ids []uint) ([]GrupoPagamento, error) {
	var grupos []GrupoPagamento
	if len(ids) == 0 {
		return grupos, nil
	}
	err := db.Where("id IN ?", ids).Find(&grupos).Error
	return grupos, err
}

func (r *repositoryImpl) ContarPorDocumento(db *gorm.DB, documento string) (int64, error) {
	var total int64
	err := db.Model(&GrupoPagamento{}).Where("documento_pagador = ?", documento).Count(&total).Error
	return total, err
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Delete(&GrupoPagamento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
