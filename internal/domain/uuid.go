package domain

import (
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const uuidParam = "uuid"

// UniqueIdentifier is a random 128-bit identifier in canonical hyphenated
// form. The zero value is the nil UUID; use NewUniqueIdentifier to generate one.
type UniqueIdentifier struct {
	id uuid.UUID
}

// NewUniqueIdentifier returns a freshly generated identifier.
func NewUniqueIdentifier() UniqueIdentifier {
	return UniqueIdentifier{id: uuid.New()}
}

func (UniqueIdentifier) ParamType() string { return uuidParam }

// Regenerate replaces the value with a new random identifier.
func (u *UniqueIdentifier) Regenerate() {
	u.id = uuid.New()
}

// UUID returns the underlying value.
func (u UniqueIdentifier) UUID() uuid.UUID { return u.id }

func (u UniqueIdentifier) IsNil() bool { return u.id == uuid.Nil }

func (u UniqueIdentifier) String() string { return u.id.String() }

// Assign accepts only the 36-character xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u *UniqueIdentifier) Assign(text string) error {
	s := strings.TrimSpace(text)
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return FormatError(uuidParam, text, "expected 8-4-4-4-12 hex digits")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return FormatError(uuidParam, text, err.Error())
	}
	u.id = id
	return nil
}

func (u UniqueIdentifier) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *UniqueIdentifier) UnmarshalText(text []byte) error { return u.Assign(string(text)) }

func (u UniqueIdentifier) MarshalYAML() (any, error) { return u.String(), nil }

func (u *UniqueIdentifier) UnmarshalYAML(node *yaml.Node) error { return AssignNode(u, node) }
