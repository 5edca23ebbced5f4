// Package scheduled contém as rotinas diárias de cobrança: a transição de
// parcelas pendentes para vencidas e o recálculo do valor em atraso.
package scheduled

import (
	"time"

	"github.com/gustavocaixetarosa/cp/internal/grupopagamento"
	"github.com/gustavocaixetarosa/cp/internal/pagamento"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var trinta = decimal.NewFromInt(30)

// Jobs agrupa as rotinas agendadas. A ordem importa: AtualizarStatus deve
// rodar antes de AtualizarValoresVencidos, que só enxerga parcelas já
// marcadas como OVERDUE.
type Jobs struct {
	DB         *gorm.DB
	Pagamentos pagamento.Repository
	Grupos     grupopagamento.Repository
	Log        *logrus.Logger
}

func NewJobs(db *gorm.DB, log *logrus.Logger) *Jobs {
	return &Jobs{
		DB:         db,
		Pagamentos: pagamento.NewRepository(),
		Grupos:     grupopagamento.NewRepository(),
		Log:        log,
	}
}

// AtualizarStatus transiciona para OVERDUE toda parcela pendente com
// vencimento anterior a hoje. Retorna o número de parcelas alteradas.
func (j *Jobs) AtualizarStatus() (int64, error) {
	j.Log.Info("Iniciando atualização de status dos pagamentos...")

	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())

	alteradas, err := j.Pagamentos.MarcarVencidos(j.DB, hoje)
	if err != nil {
		j.Log.Errorf("Erro ao atualizar status dos pagamentos: %v", err)
		return 0, err
	}

	j.Log.Infof("Atualização de status concluída. %d linhas alteradas", alteradas)
	return alteradas, nil
}

// AtualizarValoresVencidos recalcula o valor em atraso de cada parcela
// vencida: multa fixa sobre o valor original mais juros diários
// proporcionais aos dias de atraso. O cálculo parte sempre do valor
// original, nunca do valor em atraso anterior, então rodar a rotina várias
// vezes no mesmo dia produz o mesmo resultado.
func (j *Jobs) AtualizarValoresVencidos() (int, error) {
	j.Log.Info("Iniciando atualização dos valores em atraso...")

	vencidos, err := j.Pagamentos.ListarVencidos(j.DB, nil)
	if err != nil {
		return 0, err
	}
	j.Log.Infof("Encontrados %d pagamentos vencidos para processar", len(vencidos))

	grupos, err := j.carregarGrupos(vencidos)
	if err != nil {
		return 0, err
	}

	hoje := time.Now()
	atualizados := 0

	for i := range vencidos {
		p := &vencidos[i]

		if p.GrupoPagamentoID == nil {
			j.Log.Warnf("Pagamento %d não tem grupo, pulando atualização de valor", p.ID)
			continue
		}
		grupo, ok := grupos[*p.GrupoPagamentoID]
		if !ok {
			j.Log.Warnf("Grupo %d do pagamento %d não encontrado, pulando", *p.GrupoPagamentoID, p.ID)
			continue
		}

		diasAtraso := pagamento.EpochDay(hoje) - pagamento.EpochDay(p.DataVencimento)
		if diasAtraso <= 0 {
			continue
		}

		novoValor := CalcularValorVencido(p.ValorOriginal, grupo.TaxaMulta, grupo.TaxaJurosMensal, diasAtraso)

		if p.ValorVencido != nil && p.ValorVencido.Equal(novoValor) &&
			p.DataValorVencido != nil && pagamento.MesmaData(*p.DataValorVencido, hoje) {
			continue
		}

		p.ValorVencido = &novoValor
		dataCalculo := hoje
		p.DataValorVencido = &dataCalculo

		if err := j.Pagamentos.Atualizar(j.DB, p); err != nil {
			// Uma parcela com problema não derruba o lote.
			j.Log.Errorf("Erro ao gravar valor em atraso do pagamento %d: %v", p.ID, err)
			continue
		}
		atualizados++

		j.Log.Debugf("Pagamento %d atualizado: original=%s diasAtraso=%d novoValor=%s",
			p.ID, p.ValorOriginal, diasAtraso, novoValor)
	}

	j.Log.Infof("Atualização de valores concluída para %d pagamentos", atualizados)
	return atualizados, nil
}

// CalcularValorVencido deriva o valor em atraso a partir do valor original:
// multa = valor x taxa de multa; juros = valor x (taxa mensal / 30,
// arredondada para 10 casas) x dias de atraso; resultado arredondado para 2
// casas, half-up. Taxa nula conta como zero. A divisão por 30 é fixa,
// independente do mês.
func CalcularValorVencido(valorOriginal decimal.Decimal, taxaMulta, taxaJurosMensal *decimal.Decimal, diasAtraso int64) decimal.Decimal {
	multaRate := decimal.Zero
	if taxaMulta != nil {
		multaRate = *taxaMulta
	}
	jurosRate := decimal.Zero
	if taxaJurosMensal != nil {
		jurosRate = *taxaJurosMensal
	}

	multa := valorOriginal.Mul(multaRate)
	jurosDiario := jurosRate.DivRound(trinta, 10)
	juros := valorOriginal.Mul(jurosDiario).Mul(decimal.NewFromInt(diasAtraso))

	return valorOriginal.Add(multa).Add(juros).Round(2)
}

func (j *Jobs) carregarGrupos(vencidos []pagamento.Pagamento) (map[uint]grupopagamento.GrupoPagamento, error) {
	ids := make([]uint, 0, len(vencidos))
	vistos := map[uint]bool{}
	for _, p := range vencidos {
		if p.GrupoPagamentoID != nil && !vistos[*p.GrupoPagamentoID] {
			ids = append(ids, *p.GrupoPagamentoID)
			vistos[*p.GrupoPagamentoID] = true
		}
	}

	grupos, err := j.Grupos.BuscarPorIDs(j.DB, ids)
	if err != nil {
		return nil, err
	}
	porID := make(map[uint]grupopagamento.GrupoPagamento, len(grupos))
	for _, g := range grupos {
		porID[g.ID] = g
	}
	return porID, nil
}
