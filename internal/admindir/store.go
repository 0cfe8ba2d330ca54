// Package admindir mirrors "is this identity an admin" and its custom
// claims in a document store. It is an out-of-band bootstrap directory for
// the identity provider, not part of the tenant-guard path.
package admindir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Record struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Store exposes get/set/delete by identity over the document store.
type Store interface {
	Get(ctx context.Context, uid string) (*Record, error)
	Set(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context) ([]Record, error)
	FindUIDByEmail(ctx context.Context, email string) (string, error)
}

const (
	recordKeyPrefix = "admindir:admin:"
	emailKeyPrefix  = "admindir:email:"
	indexKey        = "admindir:admins"
)

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &redisStore{client: redis.NewClient(opts)}, nil
}

func (s *redisStore) Get(ctx context.Context, uid string) (*Record, error) {
	data, err := s.client.Get(ctx, recordKeyPrefix+uid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt admin record %s: %w", uid, err)
	}
	return &rec, nil
}

func (s *redisStore) Set(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recordKeyPrefix+rec.UID, data, 0)
	pipe.SAdd(ctx, indexKey, rec.UID)
	if rec.Email != "" {
		pipe.Set(ctx, emailKeyPrefix+rec.Email, rec.UID, 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisStore) Delete(ctx context.Context, uid string) error {
	rec, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, recordKeyPrefix+uid)
	pipe.SRem(ctx, indexKey, uid)
	if rec != nil && rec.Email != "" {
		pipe.Del(ctx, emailKeyPrefix+rec.Email)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisStore) List(ctx context.Context) ([]Record, error) {
	uids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(uids))
	for _, uid := range uids {
		rec, err := s.Get(ctx, uid)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (s *redisStore) FindUIDByEmail(ctx context.Context, email string) (string, error) {
	uid, err := s.client.Get(ctx, emailKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return uid, err
}
