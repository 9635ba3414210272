// Package repository defines the persistence contract for records made of
// parameter fields.
//
// A record is any domain.Record. Each field is stored as its canonical
// text and read back through the field's Assign, so a value that no longer
// validates surfaces as a domain.ParamError on Load rather than being
// silently accepted. List fields are stored as their element texts.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Repository over a connected
// connector.Connector whose engine exposes a *sql.DB (the sqlite and
// sqlite3 engines). The schema is managed with goose migrations embedded
// in the package:
//
//	params(record, key, field, value, updated_at)
//
// Save is an upsert inside a transaction and prunes fields the record no
// longer declares.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases opened
// through the connector.
package repository
