package cliente

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gustavocaixetarosa/cp/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo handler de clientes
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

type criarClienteRequest struct {
	Nome            string           `json:"nome"`
	Endereco        string           `json:"endereco"`
	Telefone        string           `json:"telefone"`
	Documento       string           `json:"documento"`
	Banco           string           `json:"banco"`
	TaxaMulta       *decimal.Decimal `json:"taxaMulta"`
	TaxaJurosMensal *decimal.Decimal `json:"taxaJurosMensal"`
}

type atualizarClienteRequest struct {
	Nome            *string          `json:"nome"`
	Endereco        *string          `json:"endereco"`
	Telefone        *string          `json:"telefone"`
	Documento       *string          `json:"documento"`
	Banco           *string          `json:"banco"`
	TaxaMulta       *decimal.Decimal `json:"taxaMulta"`
	TaxaJurosMensal *decimal.Decimal `json:"taxaJurosMensal"`
}

// CriarCliente trata POST /v1/clientes
func (h *Handler) CriarCliente(w http.ResponseWriter, r *http.Request) {
	var req criarClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Nome == "" || req.Documento == "" {
		http.Error(w, "Os campos 'nome' e 'documento' são obrigatórios", http.StatusBadRequest)
		return
	}

	c := Cliente{
		Nome:            utils.FormatarNome(req.Nome),
		Endereco:        req.Endereco,
		Telefone:        req.Telefone,
		Documento:       req.Documento,
		Banco:           req.Banco,
		TaxaMulta:       req.TaxaMulta,
		TaxaJurosMensal: req.TaxaJurosMensal,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "Já existe cliente com esse documento", http.StatusConflict)
			return
		}
		http.Error(w, "Erro ao criar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListarClientes trata GET /v1/clientes
func (h *Handler) ListarClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	if len(clientes) == 0 {
		http.Error(w, "Nenhum cliente encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clientes)
}

// BuscarPorID trata GET /v1/clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// AtualizarCliente trata PUT /v1/clientes/{id} com atualização parcial
func (h *Handler) AtualizarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	if req.Nome != nil {
		c.Nome = utils.FormatarNome(*req.Nome)
	}
	if req.Endereco != nil {
		c.Endereco = *req.Endereco
	}
	if req.Telefone != nil {
		c.Telefone = *req.Telefone
	}
	if req.Documento != nil {
		c.Documento = *req.Documento
	}
	if req.Banco != nil {
		c.Banco = *req.Banco
	}
	if req.TaxaMulta != nil {
		c.TaxaMulta = req.TaxaMulta
	}
	if req.TaxaJurosMensal != nil {
		c.TaxaJurosMensal = req.TaxaJurosMensal
	}

	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// DeletarCliente trata DELETE /v1/clientes/{id}
func (h *Handler) DeletarCliente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao remover cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
