package boleto

import (
	"context"
	"errors"
	"fmt"

	"github.com/gustavocaixetarosa/cp/internal/cliente"
	"github.com/gustavocaixetarosa/cp/internal/grupopagamento"
	"github.com/gustavocaixetarosa/cp/internal/pagamento"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPagamentoNaoEncontrado = errors.New("pagamento não encontrado")
	ErrBoletoNaoEncontrado    = errors.New("boleto não encontrado")
	ErrBoletoJaExiste         = errors.New("boleto já existe para o pagamento")
	ErrBoletoJaGerado         = errors.New("boleto já foi gerado com sucesso para o pagamento")
)

// ErroValidacao indica um pagamento inapto para emissão. Carrega o primeiro
// campo que falhou.
type ErroValidacao struct {
	Campo  string
	Motivo string
}

func (e *ErroValidacao) Error() string {
	return e.Motivo
}

// Service orquestra a emissão: valida o pagamento, resolve a estratégia,
// persiste o resultado (sucesso ou erro) e implementa o reprocessamento.
type Service struct {
	DB         *gorm.DB
	Registro   *Registro
	Boletos    Repository
	Pagamentos pagamento.Repository
	Grupos     grupopagamento.Repository
	Clientes   cliente.Repository
	Log        *logrus.Logger
}

func NewService(db *gorm.DB, registro *Registro, log *logrus.Logger) *Service {
	return &Service{
		DB:         db,
		Registro:   registro,
		Boletos:    NewRepository(),
		Pagamentos: pagamento.NewRepository(),
		Grupos:     grupopagamento.NewRepository(),
		Clientes:   cliente.NewRepository(),
		Log:        log,
	}
}

// Gerar emite o boleto de um pagamento. A primeira emissão é estritamente
// única: se já existe registro para o pagamento, seja qual for o status, a
// chamada falha com ErrBoletoJaExiste. Falha do banco não é erro: vira um
// registro com status ERROR, persistido e devolvido normalmente.
func (s *Service) Gerar(ctx context.Context, pagamentoID uint, banco Banco) (*Boleto, error) {
	var gerado *Boleto
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		gerado, err = s.gerarEm(ctx, tx, pagamentoID, banco)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gerado, nil
}

func (s *Service) gerarEm(ctx context.Context, tx *gorm.DB, pagamentoID uint, banco Banco) (*Boleto, error) {
	s.Log.Infof("Iniciando geração de boleto para pagamento %d no banco %s", pagamentoID, banco)

	pag, err := s.Pagamentos.BuscarPorID(tx, pagamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrPagamentoNaoEncontrado, pagamentoID)
		}
		return nil, err
	}

	existe, err := s.Boletos.ExistePorPagamento(tx, pagamentoID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, fmt.Errorf("%w: %d", ErrBoletoJaExiste, pagamentoID)
	}

	if err := validarPagamento(pag); err != nil {
		return nil, err
	}

	req, err := s.montarSolicitacao(tx, pag)
	if err != nil {
		return nil, err
	}

	estrategia, err := s.Registro.Obter(banco)
	if err != nil {
		return nil, err
	}

	resposta := estrategia.GerarBoleto(ctx, req)

	status := StatusGerado
	if !resposta.Sucesso {
		status = StatusErro
	}
	b := &Boleto{
		PagamentoID:    pag.ID,
		Banco:          banco,
		NossoNumero:    resposta.NossoNumero,
		CodigoBarras:   resposta.CodigoBarras,
		LinhaDigitavel: resposta.LinhaDigitavel,
		PdfURL:         resposta.PdfURL,
		Status:         status,
		RespostaBanco:  resposta.RespostaBruta,
		MensagemErro:   resposta.MensagemErro,
	}

	// O índice único em pagamento_id resolve a corrida entre duas emissões
	// simultâneas: só uma insere, a outra recebe violação de unicidade.
	if err := s.Boletos.Criar(tx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %d", ErrBoletoJaExiste, pagamentoID)
		}
		return nil, err
	}

	if resposta.Sucesso {
		s.Log.Infof("Boleto gerado com sucesso para pagamento %d", pagamentoID)
	} else {
		s.Log.Warnf("Boleto com erro para pagamento %d: %s", pagamentoID, resposta.MensagemErro)
	}

	return b, nil
}

// Reprocessar repete a emissão de um boleto que falhou. Registro com status
// diferente de ERROR não pode ser reprocessado; o registro com erro é
// removido antes da nova tentativa, então reprocessos repetidos nunca
// acumulam registros.
func (s *Service) Reprocessar(ctx context.Context, pagamentoID uint, banco Banco) (*Boleto, error) {
	s.Log.Infof("Reprocessando boleto para pagamento %d", pagamentoID)

	var gerado *Boleto
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Pagamentos.BuscarPorID(tx, pagamentoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrPagamentoNaoEncontrado, pagamentoID)
			}
			return err
		}

		existente, err := s.Boletos.BuscarPorPagamento(tx, pagamentoID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existente != nil {
			if existente.Status != StatusErro {
				return fmt.Errorf("%w: %d", ErrBoletoJaGerado, pagamentoID)
			}
			if err := s.Boletos.Remover(tx, existente.ID); err != nil {
				return err
			}
		}

		gerado, err = s.gerarEm(ctx, tx, pagamentoID, banco)
		return err
	})
	if err != nil {
		return nil, err
	}
	return gerado, nil
}

// BuscarPorPagamento devolve o boleto de um pagamento existente.
func (s *Service) BuscarPorPagamento(pagamentoID uint) (*Boleto, error) {
	if _, err := s.Pagamentos.BuscarPorID(s.DB, pagamentoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrPagamentoNaoEncontrado, pagamentoID)
		}
		return nil, err
	}

	b, err := s.Boletos.BuscarPorPagamento(s.DB, pagamentoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pagamento %d", ErrBoletoNaoEncontrado, pagamentoID)
		}
		return nil, err
	}
	return b, nil
}

// validarPagamento checa os pré-requisitos de emissão na ordem fixa:
// valor, vencimento, nome e documento do pagador.
func validarPagamento(p *pagamento.Pagamento) error {
	if !p.ValorOriginal.IsPositive() {
		return &ErroValidacao{Campo: "valorOriginal", Motivo: "Valor do pagamento inválido"}
	}
	if p.DataVencimento.IsZero() {
		return &ErroValidacao{Campo: "dataVencimento", Motivo: "Data de vencimento não informada"}
	}
	if p.NomePagador == "" {
		return &ErroValidacao{Campo: "nomePagador", Motivo: "Nome do pagador não informado"}
	}
	if p.DocumentoPagador == "" {
		return &ErroValidacao{Campo: "documentoPagador", Motivo: "Documento do pagador não informado"}
	}
	return nil
}

// montarSolicitacao junta pagamento, grupo (telefone e descrição) e cliente
// (taxas padrão) na solicitação canônica.
func (s *Service) montarSolicitacao(tx *gorm.DB, pag *pagamento.Pagamento) (SolicitacaoBoleto, error) {
	req := SolicitacaoBoleto{
		PagamentoID:      pag.ID,
		Valor:            pag.ValorOriginal,
		DataVencimento:   pag.DataVencimento,
		NomePagador:      pag.NomePagador,
		DocumentoPagador: pag.DocumentoPagador,
	}

	if pag.GrupoPagamentoID != nil {
		grupo, err := s.Grupos.BuscarPorID(tx, *pag.GrupoPagamentoID)
		if err != nil {
			return SolicitacaoBoleto{}, err
		}
		req.TelefonePagador = grupo.TelefonePagador
		req.Descricao = grupo.Nome
	}

	c, err := s.Clientes.BuscarPorID(tx, pag.ClienteID)
	if err != nil {
		return SolicitacaoBoleto{}, err
	}
	req.TaxaMulta = c.TaxaMulta
	req.TaxaJurosMensal = c.TaxaJurosMensal

	return req, nil
}
