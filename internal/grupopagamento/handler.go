package grupopagamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula o DB, o Repository e a Factory
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Factory    *Factory
}

// NewHandler cria um novo handler de grupos de pagamento
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Factory:    NewFactory(),
	}
}

// CriarGrupo trata POST /v1/grupos-pagamento
func (h *Handler) CriarGrupo(w http.ResponseWriter, r *http.Request) {
	var req CriarGrupoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.TotalParcelas <= 0 {
		http.Error(w, "O campo 'totalParcelas' deve ser maior que zero", http.StatusBadRequest)
		return
	}
	if !req.ValorMensal.IsPositive() {
		http.Error(w, "O campo 'valorMensal' deve ser maior que zero", http.StatusBadRequest)
		return
	}
	if req.DocumentoPagador == "" || req.NomePagador == "" {
		http.Error(w, "Os campos 'nomePagador' e 'documentoPagador' são obrigatórios", http.StatusBadRequest)
		return
	}

	var grupo *GrupoPagamento
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		grupo, err = h.Factory.Criar(tx, req)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrClienteNaoEncontrado) {
			http.Error(w, "Cliente não encontrado", http.StatusBadRequest)
			return
		}
		http.Error(w, "Erro ao criar grupo de pagamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(grupo)
}

// ListarGrupos trata GET /v1/grupos-pagamento
func (h *Handler) ListarGrupos(w http.ResponseWriter, r *http.Request) {
	grupos, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar grupos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grupos)
}

// BuscarPorID trata GET /v1/grupos-pagamento/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	grupo, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Grupo não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grupo)
}

// DeletarGrupo trata DELETE /v1/grupos-pagamento/{id}
func (h *Handler) DeletarGrupo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Remover(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Grupo não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao remover grupo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
