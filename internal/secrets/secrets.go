// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	secretsmanagerv2 "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/tidwall/gjson"

	"github.com/kicksaw/sfictl/internal/log"
)

// defaultTTL bounds how long a fetched secret string may be served from
// memory before Secrets Manager is consulted again.
const defaultTTL = 60 * time.Second

// API is the slice of the Secrets Manager client the store depends on.
type API interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanagerv2.GetSecretValueInput,
		optFns ...func(*secretsmanagerv2.Options),
	) (*secretsmanagerv2.GetSecretValueOutput, error)
}

type entry struct {
	value     string
	fetchedAt time.Time
}

// Store caches secret strings in memory with a TTL. The cache is in-process
// only; secret payloads are credentials and must never touch disk.
type Store struct {
	api API
	ttl time.Duration

	mu    sync.Mutex
	cache map[string]entry

	// now is swapped by tests to control TTL expiry.
	now func() time.Time
}

// NewStore builds a Store around the given Secrets Manager API with the
// default 60s TTL.
func NewStore(api API) *Store {
	return &Store{
		api:   api,
		ttl:   defaultTTL,
		cache: make(map[string]entry),
		now:   time.Now,
	}
}

// GetRaw returns the raw secret string for the named secret. Values that
// still contain the "changeme" placeholder are served but logged as a
// warning so misconfigured environments surface early.
func (s *Store) GetRaw(ctx context.Context, name string) (string, error) {
	value, err := s.fetch(ctx, name)
	if err != nil {
		return "", err
	}
	if strings.Contains(strings.ToLower(value), "changeme") {
		log.Warnf("secret %q is not set", name)
	}
	return value, nil
}

// Get parses the named secret as a JSON object and returns its values as a
// string map. JSON nulls are kept as empty strings with presence preserved
// through the second map. Keys whose values contain "changeme" are logged.
func (s *Store) Get(ctx context.Context, name string) (map[string]string, error) {
	value, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	parsed := gjson.Parse(value)
	if !parsed.IsObject() {
		return nil, errors.New("secret string is not a JSON object")
	}

	out := make(map[string]string)
	parsed.ForEach(func(key, val gjson.Result) bool {
		if val.Type == gjson.Null {
			out[key.String()] = ""
			return true
		}
		str := val.String()
		if strings.Contains(strings.ToLower(str), "changeme") {
			log.Warnf("%q is not set on the %q secret", key.String(), name)
		}
		out[key.String()] = str
		return true
	})
	return out, nil
}

// Invalidate drops any cached value for the named secret.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, name)
}

func (s *Store) fetch(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	if e, ok := s.cache[name]; ok && s.now().Sub(e.fetchedAt) < s.ttl {
		s.mu.Unlock()
		log.Debugf("secret cache hit: name=%s", name)
		return e.value, nil
	}
	s.mu.Unlock()

	out, err := s.api.GetSecretValue(ctx, &secretsmanagerv2.GetSecretValueInput{
		SecretId: awsv2.String(name),
	})
	if err != nil {
		return "", err
	}
	value := awsv2.ToString(out.SecretString)

	s.mu.Lock()
	s.cache[name] = entry{value: value, fetchedAt: s.now()}
	s.mu.Unlock()

	return value, nil
}
