package pagamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Service
type Handler struct {
	DB      *gorm.DB
	Service *Service
}

// NewHandler cria um novo handler de pagamentos
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Service: NewService(db)}
}

// ListarPagamentos trata GET /v1/pagamentos
func (h *Handler) ListarPagamentos(w http.ResponseWriter, r *http.Request) {
	pagamentos, err := h.Service.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pagamentos)
}

// ListarAgrupados trata GET /v1/pagamentos/agrupados com filtros opcionais
// clienteId, status, mes e ano.
func (h *Handler) ListarAgrupados(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var clienteID *uint
	if v := q.Get("clienteId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		u := uint(id)
		clienteID = &u
	}
	var status *string
	if v := q.Get("status"); v != "" {
		status = &v
	}
	var mes, ano *int
	if v := q.Get("mes"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, "mes inválido", http.StatusBadRequest)
			return
		}
		mes = &m
	}
	if v := q.Get("ano"); v != "" {
		a, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "ano inválido", http.StatusBadRequest)
			return
		}
		ano = &a
	}

	agrupados, err := h.Service.ListarAgrupados(clienteID, status, mes, ano)
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agrupados)
}

// AtualizarPagamento trata PUT /v1/pagamentos/{id}
func (h *Handler) AtualizarPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req AtualizacaoPagamento
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Atualizar(uint(id), req)
	if err != nil {
		if errors.Is(err, ErrPagamentoNaoEncontrado) {
			http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar pagamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// MarcarComoPago trata POST /v1/pagamentos/{id}/pagar
func (h *Handler) MarcarComoPago(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.MarcarComoPago(uint(id))
	if err != nil {
		if errors.Is(err, ErrPagamentoNaoEncontrado) {
			http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao marcar pagamento como pago", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
