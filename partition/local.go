package partition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/langchain-ai/langchain-unstructured/element"
)

// Engine is an in-process partitioning entry point: it turns raw
// document bytes into typed elements. Engines are not required to be
// safe for concurrent use; Local serializes calls.
type Engine interface {
	Partition(ctx context.Context, req Request) ([]element.Element, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, req Request) ([]element.Element, error)

// Partition calls f.
func (f EngineFunc) Partition(ctx context.Context, req Request) ([]element.Element, error) {
	return f(ctx, req)
}

// ErrNoEngine is returned when local partitioning is requested but no
// engine is configured. Provide one with NewLocal, or partition via
// the remote API instead.
var ErrNoEngine = errors.New(
	"no local partitioning engine configured: provide one with partition.NewLocal, or partition via the API")

// Local wraps an in-process partitioning engine. The engine handle is
// shared, so the partition-and-normalize span runs under a mutex: two
// documents never hit the engine concurrently through the same Local.
type Local struct {
	mu     sync.Mutex
	engine Engine
}

// NewLocal returns a Source backed by the given engine.
func NewLocal(engine Engine) *Local {
	return &Local{engine: engine}
}

// Partition invokes the engine and normalizes its output: elements
// come back in document order with every element carrying a stable
// identifier (engine-assigned, or backfilled with a fresh UUID).
func (l *Local) Partition(ctx context.Context, req Request) ([]element.Element, error) {
	if l == nil || l.engine == nil {
		return nil, ErrNoEngine
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	elems, err := l.engine.Partition(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("partitioning %s: %w", req.name(), err)
	}
	for i := range elems {
		if elems[i].ID == "" {
			elems[i].ID = uuid.NewString()
		}
	}
	return elems, nil
}
