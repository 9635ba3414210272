// Package connector binds a connection string to a pluggable database engine.
//
// # Engines
//
// An Engine is the capability a Connector drives: Connect, Disconnect,
// IsConnected and Type. Engines are created from a registry keyed by
// EngineType. Each engine package registers itself in init(), so a program
// selects the engines it links with blank imports:
//
//	import _ "paramkit/internal/connector/sqlite"
//
// New tags are added by registering them; an existing tag cannot be
// replaced.
//
// SQLEngine implements Engine over database/sql and is embedded by the
// sqlite, sqlite3 and postgres packages.
//
// # Lifecycle
//
// A Connector is Unbound until an engine is bound, then BoundDisconnected
// or BoundConnected depending on the engine. Changing the connection string
// of a connected connector reconnects with the new string. Every failure is
// a domain.ParamError of kind connection.
//
// # Serialization
//
// The text form is the connection string. The YAML form is either that
// string or a mapping:
//
//	database:
//	  dbtype: sqlite
//	  connectionstring: /var/lib/paramkit/params.db
package connector
