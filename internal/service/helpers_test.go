package service

import (
	"context"
	"errors"
	"sync"

	"github.com/tazhibayda/threads-service/internal/repo/memrepo"
)

var _ Store = (*memrepo.Store)(nil)

type recordingCache struct {
	paths []string
	err   error
}

func (c *recordingCache) Invalidate(ctx context.Context, path string) error {
	c.paths = append(c.paths, path)
	return c.err
}

type published struct {
	exchange, key, reqID string
	event                any
}

type recordingPub struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{exchange: exchange, key: key, reqID: reqID, event: event})
	return p.err
}

func (p *recordingPub) Close() error { return nil }

var errDBDown = errors.New("connection refused")
