package cliente

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Cliente) error
	ListarTodos(db *gorm.DB) ([]Cliente, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	BuscarPorIDs(db *gorm.DB, ids []uint) ([]Cliente, error)
	Atualizar(db *gorm.DB, c *Cliente) error
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Cliente, error) {
	var clientes []Cliente
	err := db.Order("nome ASC").Find(&clientes).Error
	return clientes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) BuscarPorIDs(db *gorm.DB, ids []uint) ([]Cliente, error) {
	var clientes []Cliente
	if len(ids) == 0 {
		return clientes, nil
	}
	err := db.Where("id IN ?", ids).Find(&clientes).Error
	return clientes, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Delete(&Cliente{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
