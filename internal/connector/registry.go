package connector

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"paramkit/internal/domain"
)

// Factory builds an unconnected engine. A nil logger means discard.
type Factory func(logger *slog.Logger) Engine

var (
	registryMu sync.RWMutex
	registry   = make(map[EngineType]Factory)
)

// Register adds an engine factory under tag.
// Called by engine packages in their init() functions. Registering a tag
// twice panics, so existing tags can never be redefined.
func Register(tag EngineType, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if tag == "" || factory == nil {
		panic("connector: Register requires a tag and a factory")
	}
	if _, dup := registry[tag]; dup {
		panic(fmt.Sprintf("connector: engine %q registered twice", tag))
	}
	registry[tag] = factory
}

// Lookup retrieves an engine factory by tag.
func Lookup(tag EngineType) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[tag]
	return f, ok
}

// IsRegistered checks if an engine tag is registered.
func IsRegistered(tag EngineType) bool {
	_, ok := Lookup(tag)
	return ok
}

// Engines returns all registered tags (sorted).
func Engines() []EngineType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]EngineType, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// NewEngine creates an engine instance for tag.
func NewEngine(tag EngineType, logger *slog.Logger) (Engine, error) {
	factory, ok := Lookup(tag)
	if !ok {
		return nil, &UnknownEngineError{Type: tag, Available: Engines()}
	}
	return factory(orDiscard(logger)), nil
}

// UnknownEngineError is returned when an unregistered engine tag is requested.
// It matches domain.ErrConnection.
type UnknownEngineError struct {
	Type      EngineType
	Available []EngineType
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown database engine %q, available engines: %v", e.Type, e.Available)
}

func (e *UnknownEngineError) Is(target error) bool {
	return target == domain.ErrConnection
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
