package service

import (
	"context"
	"time"

	"charlie/internal/engine"
	"charlie/internal/sessions"
	"charlie/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resolver responde uma pergunta ja recebida do usuario.
type Resolver interface {
	ResolveReply(query string, today time.Time) engine.Reply
}

// Sender entrega a resposta ao usuario.
type Sender interface {
	SendMessage(ctx context.Context, number string, message string) error
}

type MessageService struct {
	resolver Resolver
	sender   Sender
	sessions *sessions.Store
	today    func() time.Time
	log      zerolog.Logger
}

func NewMessageService(resolver Resolver, sender Sender, store *sessions.Store, today func() time.Time, log zerolog.Logger) *MessageService {
	return &MessageService{
		resolver: resolver,
		sender:   sender,
		sessions: store,
		today:    today,
		log:      log.With().Str("component", "message_service").Logger(),
	}
}

// ProcessMessage responde a mensagem recebida. No primeiro contato de um numero
// envia antes a mensagem de boas-vindas.
func (s *MessageService) ProcessMessage(ctx context.Context, number string, message string, name string) error {
	log := s.log.With().Str("turn_id", uuid.NewString()).Str("number", number).Logger()
	log.Info().Str("name", name).Str("text", message).Msg("processando mensagem")

	if s.sessions.FirstContact(number) {
		if err := s.sender.SendMessage(ctx, number, utils.BuildWelcome()); err != nil {
			// Sem boas-vindas registradas, a proxima mensagem tenta de novo.
			s.sessions.Forget(number)
			log.Error().Err(err).Msg("erro ao enviar boas-vindas")
			return err
		}
	}

	reply := s.resolver.ResolveReply(message, s.today())

	evt := log.Info().Str("intent", string(reply.Intent))
	if reply.Match != nil {
		evt = evt.Str("match", reply.Match.Key).Int("score", reply.Match.Score)
	}
	evt.Msg("intencao resolvida")

	if err := s.sender.SendMessage(ctx, number, reply.Text); err != nil {
		log.Error().Err(err).Msg("erro ao enviar resposta")
		return err
	}
	return nil
}
