package seleccion

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps one Formulario per order-form session, keyed by an opaque id
// handed to the client. Sessions idle longer than the TTL are swept.
type Store struct {
	mu       sync.Mutex
	sesiones map[string]*sesion
	ttl      time.Duration
}

type sesion struct {
	form   *Formulario
	ultimo time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &Store{sesiones: make(map[string]*sesion), ttl: ttl}
	go s.barrer()
	return s
}

// Crear opens a new session and returns its id.
func (s *Store) Crear() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sesiones[id] = &sesion{form: NuevoFormulario(), ultimo: time.Now()}
	s.mu.Unlock()
	return id
}

// Obtener returns the session's form and refreshes its idle timer.
func (s *Store) Obtener(id string) (*Formulario, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ses, ok := s.sesiones[id]
	if !ok {
		return nil, false
	}
	ses.ultimo = time.Now()
	return ses.form, true
}

// Eliminar discards a session.
func (s *Store) Eliminar(id string) {
	s.mu.Lock()
	delete(s.sesiones, id)
	s.mu.Unlock()
}

func (s *Store) barrer() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for range ticker.C {
		limite := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, ses := range s.sesiones {
			if ses.ultimo.Before(limite) {
				delete(s.sesiones, id)
			}
		}
		s.mu.Unlock()
	}
}
