package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebhookPayload struct {
	Event     string `json:"event"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
	Data      struct {
		Messages struct {
			Key struct {
				RemoteJid string `json:"remoteJid"`
				FromMe    bool   `json:"fromMe"`
				ID        string `json:"id"`
			} `json:"key"`
			MessageTimestamp int64  `json:"messageTimestamp"`
			PushName         string `json:"pushName"`
			Broadcast        bool   `json:"broadcast"`
			Message          struct {
				Conversation       string `json:"conversation"`
				MessageContextInfo any    `json:"messageContextInfo"`
			} `json:"message"`
			RemoteJid string `json:"remoteJid"`
			ID        string `json:"id"`
		} `json:"messages"`
	} `json:"data"`
}

// MessageProcessor responde uma mensagem recebida.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, number string, message string, name string) error
}

// KnowledgeAdmin expoe as operacoes administrativas do motor.
type KnowledgeAdmin interface {
	Reload(ctx context.Context)
	Keys(filter string) []string
}

type Handler struct {
	processor  MessageProcessor
	admin      KnowledgeAdmin
	adminToken string
	log        zerolog.Logger
}

// New cria o handler. Sem adminToken as rotas administrativas respondem 403.
func New(processor MessageProcessor, admin KnowledgeAdmin, adminToken string, log zerolog.Logger) *Handler {
	return &Handler{
		processor:  processor,
		admin:      admin,
		adminToken: adminToken,
		log:        log.With().Str("component", "handler").Logger(),
	}
}

// Routes monta o roteador HTTP do bot.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "charlie"})
	})

	r.Post("/webhook", h.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Post("/reload", h.Reload)
		r.Get("/questions", h.Questions)
	})

	return r
}

func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Erro ao ler body", http.StatusInternalServerError)
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		http.Error(w, "Erro ao decodificar a mensagem", http.StatusBadRequest)
		return
	}

	msg := payload.Data.Messages

	if msg.Key.FromMe || msg.Message.Conversation == "" {
		w.WriteHeader(http.StatusOK)
		return
	}
	name := msg.PushName
	number := strings.Replace(msg.Key.RemoteJid, "@s.whatsapp.net", "", 1)
	text := msg.Message.Conversation

	// O erro ja foi logado; devolver 5xx faria a WaSender reenviar o evento.
	if err := h.processor.ProcessMessage(r.Context(), number, text, name); err != nil {
		h.log.Warn().Err(err).Str("request_id", chimiddleware.GetReqID(r.Context())).Msg("mensagem nao respondida")
	}
	w.WriteHeader(http.StatusOK)
}

// Reload recarrega perguntas, feriados e folgas da fonte configurada.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.admin.Reload(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"status": "reloaded", "keys": len(h.admin.Keys(""))})
}

// Questions lista as perguntas da base, opcionalmente filtradas.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	keys := h.admin.Keys(r.URL.Query().Get("filter"))
	writeJSON(w, http.StatusOK, map[string]any{"questions": keys})
}

// requireAdmin exige "Authorization: Bearer <ADMIN_TOKEN>".
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "rotas administrativas desabilitadas"})
			return
		}

		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" ||
			subtle.ConstantTimeCompare([]byte(parts[1]), []byte(h.adminToken)) != 1 {
			h.log.Warn().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("acesso administrativo negado")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token invalido"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
