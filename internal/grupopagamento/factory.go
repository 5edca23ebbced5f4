package grupopagamento

import (
	"errors"
	"fmt"
	"time"

	"github.com/gustavocaixetarosa/cp/internal/cliente"
	"github.com/gustavocaixetarosa/cp/internal/pagamento"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrClienteNaoEncontrado = errors.New("cliente não encontrado")

// CriarGrupoRequest é o pedido de criação de um grupo com suas parcelas.
type CriarGrupoRequest struct {
	ClienteID           uint             `json:"clienteId"`
	NomePagador         string           `json:"nomePagador"`
	DocumentoPagador    string           `json:"documentoPagador"`
	TelefonePagador     string           `json:"telefonePagador"`
	TotalParcelas       int              `json:"totalParcelas"`
	ValorMensal         decimal.Decimal  `json:"valorMensal"`
	DataPrimeiraParcela time.Time        `json:"dataPrimeiraParcela"`
	TaxaMulta           *decimal.Decimal `json:"taxaMulta"`
	TaxaJurosMensal     *decimal.Decimal `json:"taxaJurosMensal"`
	Observacao          string           `json:"observacao"`
}

// Factory monta um grupo de pagamento e suas parcelas em uma transação.
type Factory struct {
	Grupos     Repository
	Clientes   cliente.Repository
	Pagamentos pagamento.Repository
}

func NewFactory() *Factory {
	return &Factory{
		Grupos:     NewRepository(),
		Clientes:   cliente.NewRepository(),
		Pagamentos: pagamento.NewRepository(),
	}
}

// Criar valida o cliente, copia as taxas padrão quando não informadas e cria
// o grupo junto com todas as parcelas. Tudo dentro da transação recebida.
func (f *Factory) Criar(tx *gorm.DB, req CriarGrupoRequest) (*GrupoPagamento, error) {
	c, err := f.Clientes.BuscarPorID(tx, req.ClienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNaoEncontrado
		}
		return nil, err
	}

	nome, err := f.montarNome(tx, req.DocumentoPagador)
	if err != nil {
		return nil, err
	}

	taxaMulta := req.TaxaMulta
	if taxaMulta == nil {
		taxaMulta = c.TaxaMulta
	}
	taxaJuros := req.TaxaJurosMensal
	if taxaJuros == nil {
		taxaJuros = c.TaxaJurosMensal
	}

	grupo := &GrupoPagamento{
		ClienteID:        c.ID,
		Nome:             nome,
		DocumentoPagador: req.DocumentoPagador,
		TelefonePagador:  req.TelefonePagador,
		TotalParcelas:    req.TotalParcelas,
		TaxaMulta:        taxaMulta,
		TaxaJurosMensal:  taxaJuros,
		DataCriacao:      time.Now(),
		Observacao:       req.Observacao,
	}
	if err := f.Grupos.Criar(tx, grupo); err != nil {
		return nil, err
	}

	if err := f.Pagamentos.CriarEmLote(tx, f.montarParcelas(grupo, req)); err != nil {
		return nil, err
	}

	return grupo, nil
}

// montarNome segue o padrão documento-N, onde N é a contagem de grupos já
// existentes para aquele documento mais um.
func (f *Factory) montarNome(tx *gorm.DB, documento string) (string, error) {
	existentes, err := f.Grupos.ContarPorDocumento(tx, documento)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", documento, existentes+1), nil
}

func (f *Factory) montarParcelas(grupo *GrupoPagamento, req CriarGrupoRequest) []*pagamento.Pagamento {
	hoje := time.Now()
	parcelas := make([]*pagamento.Pagamento, 0, grupo.TotalParcelas)
	for i := 1; i <= grupo.TotalParcelas; i++ {
		vencimento := req.DataPrimeiraParcela.AddDate(0, i-1, 0)
		parcelas = append(parcelas, &pagamento.Pagamento{
			ClienteID:        grupo.ClienteID,
			GrupoPagamentoID: &grupo.ID,
			NomePagador:      req.NomePagador,
			DocumentoPagador: grupo.DocumentoPagador,
			NumeroParcela:    i,
			TotalParcelas:    grupo.TotalParcelas,
			ValorOriginal:    req.ValorMensal,
			DataVencimento:   vencimento,
			Status:           pagamento.DerivarStatus(vencimento, nil, hoje),
			Observacao:       req.Observacao,
		})
	}
	return parcelas
}
