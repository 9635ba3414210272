package connector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"paramkit/internal/domain"
)

const connectorParam = "database"

// State is the lifecycle position of a Connector.
type State int

const (
	StateUnbound State = iota
	StateBoundDisconnected
	StateBoundConnected
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBoundDisconnected:
		return "bound_disconnected"
	case StateBoundConnected:
		return "bound_connected"
	}
	return "unknown"
}

// Connector binds a connection string to a pluggable engine. It holds only
// the Engine capability; concrete engines come from the registry or are
// bound directly. A Connector is not safe for concurrent use.
type Connector struct {
	engine  Engine
	tag     EngineType
	dsn     string
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Connector.
type Option func(*Connector)

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		c.logger = logger
	}
}

// WithMetrics records connect and disconnect events into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Connector) {
		c.metrics = m
	}
}

// New creates an unbound connector.
func New(opts ...Option) *Connector {
	c := &Connector{}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = orDiscard(c.logger).With("component", "connector")
	return c
}

func (*Connector) ParamType() string { return connectorParam }

// State derives the lifecycle state from the bound engine.
func (c *Connector) State() State {
	switch {
	case c.engine == nil:
		return StateUnbound
	case c.engine.IsConnected():
		return StateBoundConnected
	}
	return StateBoundDisconnected
}

// Type returns the tag of the bound engine, or "" when unbound.
func (c *Connector) Type() EngineType { return c.tag }

// Engine returns the bound engine, or nil.
func (c *Connector) Engine() Engine { return c.engine }

// ConnectionString returns the stored connection string.
func (c *Connector) ConnectionString() string { return c.dsn }

// BindEngine replaces the engine, leaving the connector bound and
// disconnected. The prior engine is disconnected and released, and a
// connected e is disconnected before it is bound. A nil e releases.
func (c *Connector) BindEngine(e Engine) {
	if e == nil {
		_ = c.Release()
		return
	}
	c.dropEngine()
	if e.IsConnected() {
		if err := e.Disconnect(); err != nil {
			c.logger.Warn("failed to disconnect engine being bound", "engine", string(e.Type()), "error", err)
		}
	}
	c.engine = e
	c.tag = e.Type()
	c.logger.Debug("engine bound", "engine", string(c.tag))
}

// BindEngineType builds an engine for tag from the registry and binds it.
// On an unknown tag the current binding is kept.
func (c *Connector) BindEngineType(tag EngineType) error {
	e, err := NewEngine(tag, c.logger)
	if err != nil {
		return err
	}
	c.BindEngine(e)
	return nil
}

// SetConnectionString stores s. When s differs and the connector is
// connected, it disconnects and reconnects with s; a failed reconnect
// leaves the connector bound and disconnected.
func (c *Connector) SetConnectionString(ctx context.Context, s string) error {
	if s == c.dsn {
		return nil
	}
	c.dsn = s
	if !c.IsConnected() {
		return nil
	}

	c.logger.Info("connection string changed, reconnecting", "engine", string(c.tag))
	if err := c.Disconnect(); err != nil {
		return err
	}
	return c.Connect(ctx)
}

// Connect opens the bound engine with the stored connection string.
// Connecting while connected is a no-op.
func (c *Connector) Connect(ctx context.Context) error {
	if c.engine == nil {
		return domain.ConnectionError(connectorParam, "no engine bound", nil)
	}
	if c.dsn == "" {
		return domain.ConnectionError(connectorParam, "empty connection string", nil)
	}
	if c.engine.IsConnected() {
		return nil
	}

	start := time.Now()
	err := c.engine.Connect(ctx, c.dsn)
	c.metrics.RecordConnect(c.tag, err, time.Since(start))
	if err != nil {
		c.logger.Error("failed to connect", "engine", string(c.tag), "error", err)
		if errors.Is(err, domain.ErrConnection) {
			return err
		}
		return domain.ConnectionError(connectorParam, "failed to connect "+string(c.tag), err)
	}

	c.logger.Info("connected", "engine", string(c.tag))
	return nil
}

// Disconnect closes the engine. It is a no-op when not connected.
func (c *Connector) Disconnect() error {
	if !c.IsConnected() {
		return nil
	}
	err := c.engine.Disconnect()
	c.metrics.RecordDisconnect(c.tag)
	if err != nil {
		if errors.Is(err, domain.ErrConnection) {
			return err
		}
		return domain.ConnectionError(connectorParam, "failed to disconnect "+string(c.tag), err)
	}
	c.logger.Info("disconnected", "engine", string(c.tag))
	return nil
}

// IsConnected is false when unbound and delegated to the engine otherwise.
func (c *Connector) IsConnected() bool {
	return c.engine != nil && c.engine.IsConnected()
}

// Release disconnects and drops the engine, returning to the unbound state.
// The connection string is kept.
func (c *Connector) Release() error {
	err := c.Disconnect()
	c.engine = nil
	c.tag = ""
	return err
}

func (c *Connector) dropEngine() {
	if err := c.Release(); err != nil {
		c.logger.Warn("failed to disconnect replaced engine", "error", err)
	}
}

// String returns the connection string.
func (c *Connector) String() string { return c.dsn }

// Assign sets the connection string, reconnecting when connected.
func (c *Connector) Assign(text string) error {
	return c.SetConnectionString(context.Background(), text)
}

func (c *Connector) MarshalText() ([]byte, error) { return []byte(c.dsn), nil }

func (c *Connector) UnmarshalText(text []byte) error { return c.Assign(string(text)) }

type connectorDoc struct {
	DBType           string `yaml:"dbtype"`
	ConnectionString string `yaml:"connectionstring"`
}

// MarshalYAML emits a mapping with dbtype and connectionstring when an
// engine is bound, and the bare connection string otherwise.
func (c *Connector) MarshalYAML() (any, error) {
	if c.tag == "" {
		return c.dsn, nil
	}
	return connectorDoc{DBType: string(c.tag), ConnectionString: c.dsn}, nil
}

// UnmarshalYAML accepts a scalar connection string or a mapping with
// dbtype and connectionstring. A dbtype binds that engine first.
func (c *Connector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return domain.AssignNode(c, node)
	}
	var doc connectorDoc
	if err := node.Decode(&doc); err != nil {
		return domain.TypeMismatchError(connectorParam, err.Error())
	}
	if doc.DBType != "" && EngineType(doc.DBType) != c.tag {
		if err := c.BindEngineType(EngineType(doc.DBType)); err != nil {
			return err
		}
	}
	return c.SetConnectionString(context.Background(), doc.ConnectionString)
}
