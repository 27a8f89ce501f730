package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ParseID validates a path or body identifier. field names the parameter in the error meta.
func ParseID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrValidationMeta("missing identifier", map[string]string{field: "required"})
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrValidationMeta("invalid identifier", map[string]string{field: "must be uuid"})
	}
	return id, nil
}

// Viewer wraps an optional actor id. An absent viewer never matches a relation.
func Viewer(id uuid.UUID) uuid.NullUUID {
	if id == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: id, Valid: true}
}

func Anonymous() uuid.NullUUID { return uuid.NullUUID{} }

// IsViewer reports whether v is a present viewer equal to id.
func IsViewer(v uuid.NullUUID, id uuid.UUID) bool {
	return v.Valid && v.UUID == id
}
