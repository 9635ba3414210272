// Package domain defines the validating parameter types used as leaf fields of records.
//
// Every parameter parses one or more short textual syntaxes, renders a canonical
// text form, and rejects malformed input at the boundary. A failed assignment
// returns a *ParamError and leaves the value as it was, with the single
// exception of PortValue which falls back to its empty default.
//
// # Addresses
//
// IPv4Value and IPv6Value implement the closed AddressValue interface. Both
// carry an optional prefix length and answer NetworkContains by comparing
// masked addresses. IPv4 accepts dotted quads and 32-bit decimals, with a
// prefix given as a length, a dotted netmask or a decimal netmask; netmasks
// must be contiguous.
//
// PolymorphicAddress is a tagged union over the two families, selected by the
// shape of the assigned literal. AddressList and PolymorphicAddressList keep
// ordered, key-deduplicated collections; AddressRange pairs two addresses with
// a negation flag.
//
// # Ports
//
// PortValue parses single ports, closed and open ranges, each optionally
// negated. PortList keys ports by their canonical text.
//
// # Calendar and Clock
//
// CalendarDate, ClockTime and Timestamp implement proleptic Gregorian date
// arithmetic, second-resolution time arithmetic with an explicit day carry,
// and pattern formatting. Reading the current instant goes through Clock so
// tests can pin it with FixedClock.
//
// # Scalars
//
// BooleanCode maps twelve boolean spellings onto ordinals whose parity is the
// truth value. UniqueIdentifier wraps a random UUID, SecretValue holds a
// credential that can be replaced by its one-way digest, and MacAddressValue
// holds a 48-bit hardware address.
//
// # Records
//
// Record and Field connect parameters to a containing structure. AssignNode,
// DecodeRecord and EncodeRecord move values between records and YAML nodes;
// AssignValue and DecodeFields do the same for generically decoded JSON and
// TOML documents.
package domain
