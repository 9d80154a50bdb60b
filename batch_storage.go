package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-mrz-generator/models"

	"github.com/redis/go-redis/v9"
)

var ErrBatchNotFound = errors.New("batch not found")

// Should be safe to use in concurrency
type BatchStorage interface {
	// Store the records under the given batch id. Storing an existing id
	// overwrites it.
	StoreBatch(batchId string, records []models.GeneratedRecord) error

	// Retrieve the records for the batch id, ErrBatchNotFound when missing.
	RetrieveBatch(batchId string) ([]models.GeneratedRecord, error)

	// Remove the batch; a missing batch is ErrBatchNotFound.
	RemoveBatch(batchId string) error
}

type InMemoryBatchStorage struct {
	batches map[string][]models.GeneratedRecord
	mutex   sync.Mutex
}

func NewInMemoryBatchStorage() *InMemoryBatchStorage {
	return &InMemoryBatchStorage{
		batches: make(map[string][]models.GeneratedRecord),
	}
}

type RedisBatchStorage struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisBatchStorage(client *redis.Client, namespace string, ttl time.Duration) *RedisBatchStorage {
	if ttl <= 0 {
		ttl = DefaultBatchTTL
	}
	return &RedisBatchStorage{client: client, namespace: namespace, ttl: ttl}
}

// ------------------------------------------------------------------------------

func createKey(namespace, batchId string) string {
	return fmt.Sprintf("%s:batch:%s", namespace, batchId)
}

const DefaultBatchTTL time.Duration = 24 * time.Hour

func (s *RedisBatchStorage) StoreBatch(batchId string, records []models.GeneratedRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	ctx := context.Background()
	return s.client.Set(ctx, createKey(s.namespace, batchId), payload, s.ttl).Err()
}

func (s *RedisBatchStorage) RetrieveBatch(batchId string) ([]models.GeneratedRecord, error) {
	ctx := context.Background()
	payload, err := s.client.Get(ctx, createKey(s.namespace, batchId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchId)
	}
	if err != nil {
		return nil, err
	}

	var records []models.GeneratedRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch %s: %w", batchId, err)
	}
	return records, nil
}

func (s *RedisBatchStorage) RemoveBatch(batchId string) error {
	ctx := context.Background()
	removed, err := s.client.Del(ctx, createKey(s.namespace, batchId)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchId)
	}
	return nil
}

// ------------------------------------------------------------------------------

func (s *InMemoryBatchStorage) StoreBatch(batchId string, records []models.GeneratedRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.batches[batchId] = append([]models.GeneratedRecord(nil), records...)
	return nil
}

func (s *InMemoryBatchStorage) RetrieveBatch(batchId string) ([]models.GeneratedRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	records, ok := s.batches[batchId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchId)
	}
	return append([]models.GeneratedRecord(nil), records...), nil
}

func (s *InMemoryBatchStorage) RemoveBatch(batchId string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.batches[batchId]; !ok {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchId)
	}
	delete(s.batches, batchId)
	return nil
}
