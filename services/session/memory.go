package session

import (
	"context"
	"sync"
	"time"

	"frontdesk/models"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// MemoryStore keeps call sessions in process memory. Sessions idle past the
// TTL are evicted by a background janitor, covering calls whose termination
// callback never arrived.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.CallSession
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore returns a memory-backed store evicting sessions idle
// longer than ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*models.CallSession),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, callID, callerPhone string) (*models.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[callID]
	if !ok {
		sess = &models.CallSession{
			ID:          callID,
			CallerPhone: callerPhone,
			State:       models.StateGreeting,
			LastActive:  time.Now(),
		}
		s.sessions[callID] = sess
	} else {
		sess.LastActive = time.Now()
	}
	return snapshot(sess), nil
}

func (s *MemoryStore) Append(ctx context.Context, callID string, turn models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[callID]
	if !ok {
		return ErrUnknownSession
	}
	sess.History = append(sess.History, turn)
	sess.LastActive = time.Now()
	return nil
}

func (s *MemoryStore) History(ctx context.Context, callID string) ([]models.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[callID]
	if !ok {
		return nil, ErrUnknownSession
	}
	history := make([]models.Turn, len(sess.History))
	copy(history, sess.History)
	return history, nil
}

func (s *MemoryStore) SetState(ctx context.Context, callID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[callID]
	if !ok {
		return ErrUnknownSession
	}
	sess.State = state
	sess.LastActive = time.Now()
	return nil
}

func (s *MemoryStore) Evict(ctx context.Context, callID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, callID)
	return nil
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for id, sess := range s.sessions {
				if sess.LastActive.Before(cutoff) {
					delete(s.sessions, id)
					utils.GetLogger().Debug("evicted idle call session", zap.String("callID", id))
				}
			}
			s.mu.Unlock()
		}
	}
}

func snapshot(sess *models.CallSession) *models.CallSession {
	out := *sess
	out.History = make([]models.Turn, len(sess.History))
	copy(out.History, sess.History)
	return &out
}
