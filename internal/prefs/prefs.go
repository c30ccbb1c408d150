// Package prefs persists the single UI preference this system carries: the
// dark-theme flag. Backed by Redis when configured, by process memory
// otherwise (the flag is then lost on restart, which local development
// tolerates).
package prefs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TemaClaro  = "claro"
	TemaOscuro = "oscuro"
)

var ErrTemaInvalido = errors.New("tema inválido: debe ser \"claro\" u \"oscuro\"")

// Store reads and writes per-client theme preferences.
type Store interface {
	ObtenerTema(ctx context.Context, clienteID string) (string, error)
	GuardarTema(ctx context.Context, clienteID, tema string) error
}

// NewStore returns a Redis-backed store, or an in-memory one when rdb is nil.
func NewStore(rdb *redis.Client) Store {
	if rdb == nil {
		return &memoryStore{temas: make(map[string]string)}
	}
	return &redisStore{rdb: rdb}
}

func validarTema(tema string) error {
	if tema != TemaClaro && tema != TemaOscuro {
		return ErrTemaInvalido
	}
	return nil
}

type redisStore struct{ rdb *redis.Client }

func clave(clienteID string) string { return "prefs:tema:" + clienteID }

func (s *redisStore) ObtenerTema(ctx context.Context, clienteID string) (string, error) {
	tema, err := s.rdb.Get(ctx, clave(clienteID)).Result()
	if errors.Is(err, redis.Nil) {
		return TemaClaro, nil
	}
	if err != nil {
		return "", err
	}
	return tema, nil
}

func (s *redisStore) GuardarTema(ctx context.Context, clienteID, tema string) error {
	if err := validarTema(tema); err != nil {
		return err
	}
	// 90-day sliding expiry so abandoned client ids do not pile up.
	return s.rdb.Set(ctx, clave(clienteID), tema, 90*24*time.Hour).Err()
}

type memoryStore struct {
	mu    sync.RWMutex
	temas map[string]string
}

func (s *memoryStore) ObtenerTema(_ context.Context, clienteID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if tema, ok := s.temas[clienteID]; ok {
		return tema, nil
	}
	return TemaClaro, nil
}

func (s *memoryStore) GuardarTema(_ context.Context, clienteID, tema string) error {
	if err := validarTema(tema); err != nil {
		return err
	}
	s.mu.Lock()
	s.temas[clienteID] = tema
	s.mu.Unlock()
	return nil
}
