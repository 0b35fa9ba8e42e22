package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func timePtr(t null.Time) *time.Time {
	return t.Ptr()
}

func stringPtr(s null.String) *string {
	return s.Ptr()
}
