package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gustavocaixetarosa/cp/internal/config"
	"github.com/gustavocaixetarosa/cp/internal/utils"
	"github.com/sirupsen/logrus"
)

// Handler trata o login do usuário único configurado por variável de ambiente.
type Handler struct {
	Cfg *config.Config
	Log *logrus.Logger
}

func NewHandler(cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{Cfg: cfg, Log: log}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	ExpiraEm int64  `json:"expiresIn"`
}

// Login valida as credenciais e devolve um JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if !h.credenciaisValidas(req.Email, req.Senha) {
		h.Log.Warnf("Tentativa de login inválida para %s", req.Email)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Credenciais inválidas"})
		return
	}

	token, err := GerarToken(req.Email)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{Token: token, ExpiraEm: 24 * 60 * 60 * 1000})
}

// Validar responde 200 quando o token da requisição é válido. A rota fica
// atrás do middleware, então chegar aqui já significa token aceito.
func (h *Handler) Validar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"valid": true})
}

func (h *Handler) credenciaisValidas(email, senha string) bool {
	if subtle.ConstantTimeCompare([]byte(email), []byte(h.Cfg.AuthEmail)) != 1 {
		return false
	}
	if h.Cfg.AuthSenhaHash != "" {
		return utils.VerificarSenha(h.Cfg.AuthSenhaHash, senha)
	}
	return subtle.ConstantTimeCompare([]byte(senha), []byte(h.Cfg.AuthSenha)) == 1
}
