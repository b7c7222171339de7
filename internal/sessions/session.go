package sessions

import (
	"sync"
)

// Store lembra quais numeros ja receberam a mensagem de boas-vindas.
type Store struct {
	mu      sync.Mutex // protege o acesso concorrente ao mapa
	greeted map[string]struct{}
}

func NewStore() *Store {
	return &Store{greeted: make(map[string]struct{})}
}

// FirstContact marca o numero como cumprimentado e informa se esta e a primeira mensagem dele.
func (s *Store) FirstContact(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.greeted[key]; ok {
		return false
	}
	s.greeted[key] = struct{}{}
	return true
}

// Forget remove o numero; a proxima mensagem dele volta a receber boas-vindas.
func (s *Store) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.greeted, key)
}
