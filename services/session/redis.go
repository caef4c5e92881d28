package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"frontdesk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "call:sess:"

// RedisStore keeps call sessions in Redis with a TTL, for deployments with
// more than one webhook instance. Read-modify-write cycles for the same call
// id are serialized through a local keyed mutex; different call ids proceed
// independently.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *RedisStore) keyLock(callID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[callID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[callID] = l
	}
	return l
}

func (s *RedisStore) load(ctx context.Context, callID string) (*models.CallSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+callID).Result()
	if err == redis.Nil {
		return nil, ErrUnknownSession
	}
	if err != nil {
		return nil, err
	}
	var sess models.CallSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess *models.CallSession) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, b, s.ttl).Err()
}

func (s *RedisStore) GetOrCreate(ctx context.Context, callID, callerPhone string) (*models.CallSession, error) {
	lock := s.keyLock(callID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, callID)
	if err == ErrUnknownSession {
		sess = &models.CallSession{
			ID:          callID,
			CallerPhone: callerPhone,
			State:       models.StateGreeting,
			LastActive:  time.Now(),
		}
		if err := s.save(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}
	if err != nil {
		return nil, err
	}
	sess.LastActive = time.Now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Append(ctx context.Context, callID string, turn models.Turn) error {
	lock := s.keyLock(callID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, callID)
	if err != nil {
		return err
	}
	sess.History = append(sess.History, turn)
	sess.LastActive = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) History(ctx context.Context, callID string) ([]models.Turn, error) {
	sess, err := s.load(ctx, callID)
	if err != nil {
		return nil, err
	}
	return sess.History, nil
}

func (s *RedisStore) SetState(ctx context.Context, callID, state string) error {
	lock := s.keyLock(callID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, callID)
	if err != nil {
		return err
	}
	sess.State = state
	sess.LastActive = time.Now()
	return s.save(ctx, sess)
}

func (s *RedisStore) Evict(ctx context.Context, callID string) error {
	lock := s.keyLock(callID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	delete(s.locks, callID)
	s.mu.Unlock()

	return s.client.Del(ctx, sessionKeyPrefix+callID).Err()
}
