package boleto

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler expõe as rotas de boleto. Emissão com falha do banco responde
// 200 com o registro em status ERROR: rejeição do banco é um resultado
// consultável, não um erro da nossa API.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// BuscarPorPagamento trata GET /v1/boletos/pagamento/{id}
func (h *Handler) BuscarPorPagamento(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extrairID(w, r)
	if !ok {
		return
	}

	b, err := h.Service.BuscarPorPagamento(id)
	if err != nil {
		h.responderErro(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// GerarBoleto trata POST /v1/boletos/pagamento/{id}/gerar?banco=INTER
func (h *Handler) GerarBoleto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extrairID(w, r)
	if !ok {
		return
	}

	b, err := h.Service.Gerar(r.Context(), id, h.extrairBanco(r))
	if err != nil {
		h.responderErro(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// ReprocessarBoleto trata POST /v1/boletos/pagamento/{id}/reprocessar?banco=INTER
func (h *Handler) ReprocessarBoleto(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extrairID(w, r)
	if !ok {
		return
	}

	b, err := h.Service.Reprocessar(r.Context(), id, h.extrairBanco(r))
	if err != nil {
		h.responderErro(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *Handler) extrairID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID de pagamento inválido", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) extrairBanco(r *http.Request) Banco {
	banco := r.URL.Query().Get("banco")
	if banco == "" {
		return BancoInter
	}
	return Banco(banco)
}

type erroResponse struct {
	Status   int    `json:"status"`
	Mensagem string `json:"message"`
}

func (h *Handler) responderErro(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	mensagem := "Erro interno"

	var validacao *ErroValidacao
	var naoSuportado *ErroBancoNaoSuportado
	switch {
	case errors.Is(err, ErrPagamentoNaoEncontrado), errors.Is(err, ErrBoletoNaoEncontrado):
		status = http.StatusNotFound
		mensagem = err.Error()
	case errors.Is(err, ErrBoletoJaExiste), errors.Is(err, ErrBoletoJaGerado):
		status = http.StatusConflict
		mensagem = err.Error()
	case errors.As(err, &validacao):
		status = http.StatusBadRequest
		mensagem = validacao.Motivo
	case errors.As(err, &naoSuportado):
		status = http.StatusBadRequest
		mensagem = naoSuportado.Error()
	default:
		h.Service.Log.Errorf("Erro inesperado na rota de boletos: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(erroResponse{Status: status, Mensagem: mensagem})
}
