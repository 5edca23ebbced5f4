package boleto

import (
	"context"
	"fmt"
)

// Banco identifica o emissor do boleto.
type Banco string

const (
	BancoInter    Banco = "INTER"
	BancoItau     Banco = "ITAU"
	BancoBradesco Banco = "BRADESCO"
	BancoDoBrasil Banco = "BANCO_DO_BRASIL"
)

// Codigo devolve o código FEBRABAN do banco.
func (b Banco) Codigo() string {
	switch b {
	case BancoInter:
		return "077"
	case BancoItau:
		return "341"
	case BancoBradesco:
		return "237"
	case BancoDoBrasil:
		return "001"
	}
	return ""
}

// Estrategia é o contrato de emissão por banco. GerarBoleto nunca devolve
// erro: qualquer falha vira uma RespostaBancoAPI com Sucesso=false.
type Estrategia interface {
	GerarBoleto(ctx context.Context, req SolicitacaoBoleto) RespostaBancoAPI
	Banco() Banco
}

// ErroBancoNaoSuportado indica que nenhuma estratégia foi registrada para o
// banco pedido.
type ErroBancoNaoSuportado struct {
	Banco Banco
}

func (e *ErroBancoNaoSuportado) Error() string {
	return fmt.Sprintf("banco não suportado: %s", e.Banco)
}

// Registro resolve a estratégia de cada banco. É montado uma única vez na
// inicialização; quando mais de uma estratégia declara o mesmo banco, a
// registrada por último vence. É assim que o mock sobrescreve a integração
// real quando habilitado na configuração.
type Registro struct {
	estrategias map[Banco]Estrategia
}

func NovoRegistro(estrategias ...Estrategia) *Registro {
	r := &Registro{estrategias: make(map[Banco]Estrategia)}
	for _, e := range estrategias {
		r.estrategias[e.Banco()] = e
	}
	return r
}

// Obter devolve a estratégia do banco ou ErroBancoNaoSuportado.
func (r *Registro) Obter(banco Banco) (Estrategia, error) {
	e, ok := r.estrategias[banco]
	if !ok {
		return nil, &ErroBancoNaoSuportado{Banco: banco}
	}
	return e, nil
}
