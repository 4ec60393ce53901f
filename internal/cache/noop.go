package cache

import (
	"context"
	"time"
)

// NoopStore never holds anything; every lookup is a miss.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Load(_ context.Context, _ string) (*Entry, bool, error)            { return nil, false, nil }
func (n *NoopStore) Save(_ context.Context, _ string, _ *Entry, _ time.Duration) error { return nil }
func (n *NoopStore) Close() error                                                      { return nil }
