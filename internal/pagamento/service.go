package pagamento

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrPagamentoNaoEncontrado = errors.New("pagamento não encontrado")

// Service concentra as regras de atualização e consulta de pagamentos.
type Service struct {
	DB         *gorm.DB
	Repository Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Repository: NewRepository()}
}

// AtualizacaoPagamento é a atualização parcial permitida em um pagamento.
type AtualizacaoPagamento struct {
	ValorOriginal  *decimal.Decimal `json:"valorOriginal"`
	DataVencimento *time.Time       `json:"dataVencimento"`
	DataPagamento  *time.Time       `json:"dataPagamento"`
	Observacao     *string          `json:"observacao"`
}

// PagamentoAgrupado é um pagamento principal com as demais parcelas vencidas
// do mesmo grupo aninhadas.
type PagamentoAgrupado struct {
	Pagamento Pagamento   `json:"pagamento"`
	Vencidos  []Pagamento `json:"vencidos"`
}

// Atualizar aplica os campos informados e recalcula o status.
func (s *Service) Atualizar(id uint, req AtualizacaoPagamento) (*Pagamento, error) {
	p, err := s.Repository.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagamentoNaoEncontrado
		}
		return nil, err
	}

	if req.ValorOriginal != nil {
		p.ValorOriginal = *req.ValorOriginal
	}
	if req.DataVencimento != nil {
		p.DataVencimento = *req.DataVencimento
	}
	if req.DataPagamento != nil {
		p.DataPagamento = req.DataPagamento
	}
	if req.Observacao != nil {
		p.Observacao = *req.Observacao
	}

	p.Status = DerivarStatus(p.DataVencimento, p.DataPagamento, time.Now())

	if err := s.Repository.Atualizar(s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MarcarComoPago registra o pagamento na data de hoje. Se a data de
// vencimento já passou, o status fica PAID_LATE.
func (s *Service) MarcarComoPago(id uint) (*Pagamento, error) {
	p, err := s.Repository.BuscarPorID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPagamentoNaoEncontrado
		}
		return nil, err
	}

	hoje := time.Now()
	p.DataPagamento = &hoje
	if EpochDay(p.DataVencimento) < EpochDay(hoje) {
		p.Status = StatusPagoComAtraso
	} else {
		p.Status = StatusPago
	}

	if err := s.Repository.Atualizar(s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListarAgrupados devolve os pagamentos da janela pedida (mês atual por
// padrão) com as parcelas vencidas do mesmo grupo aninhadas em cada item.
// Vencidos que não aparecem na janela entram como grupos próprios no final.
func (s *Service) ListarAgrupados(clienteID *uint, status *string, mes, ano *int) ([]PagamentoAgrupado, error) {
	agora := time.Now()
	var inicio time.Time
	if mes != nil && ano != nil {
		inicio = time.Date(*ano, time.Month(*mes), 1, 0, 0, 0, 0, time.UTC)
	} else {
		inicio = time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	fim := inicio.AddDate(0, 1, 0)

	principais, err := s.Repository.ListarFiltrados(s.DB, clienteID, status, inicio, fim)
	if err != nil {
		return nil, err
	}
	vencidos, err := s.Repository.ListarVencidos(s.DB, clienteID)
	if err != nil {
		return nil, err
	}

	vencidosPorGrupo := map[uint][]Pagamento{}
	for _, v := range vencidos {
		if v.GrupoPagamentoID == nil {
			continue
		}
		vencidosPorGrupo[*v.GrupoPagamentoID] = append(vencidosPorGrupo[*v.GrupoPagamentoID], v)
	}

	processados := map[uint]bool{}
	resultado := []PagamentoAgrupado{}

	for _, p := range principais {
		aninhados := []Pagamento{}
		if p.GrupoPagamentoID != nil {
			for _, v := range vencidosPorGrupo[*p.GrupoPagamentoID] {
				if v.ID != p.ID {
					aninhados = append(aninhados, v)
				}
				processados[v.ID] = true
			}
			sort.Slice(aninhados, func(i, j int) bool {
				return aninhados[i].DataVencimento.Before(aninhados[j].DataVencimento)
			})
		}
		resultado = append(resultado, PagamentoAgrupado{Pagamento: p, Vencidos: aninhados})
		processados[p.ID] = true
	}

	// Vencidos fora da janela: o mais antigo de cada grupo vira o principal.
	for _, grupo := range vencidosPorGrupo {
		restantes := []Pagamento{}
		for _, v := range grupo {
			if !processados[v.ID] {
				restantes = append(restantes, v)
			}
		}
		if len(restantes) == 0 {
			continue
		}
		sort.Slice(restantes, func(i, j int) bool {
			return restantes[i].DataVencimento.Before(restantes[j].DataVencimento)
		})
		resultado = append(resultado, PagamentoAgrupado{Pagamento: restantes[0], Vencidos: restantes[1:]})
		for _, v := range restantes {
			processados[v.ID] = true
		}
	}

	return resultado, nil
}
