package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/seasurvey/transect-backend-go/internal/models"
)

// ErrDateOutOfRange is returned for a date outside years 0001 to 9999
var ErrDateOutOfRange = errors.New("date out of range")

// storageDateLayout is what every dialect accepts for DATETIME/TIMESTAMP input
const storageDateLayout = "2006-01-02 15:04:05"

// layouts a driver may hand back for a date column stored as text
var readDateLayouts = []string{
	storageDateLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// formatDate converts an epoch-UTC second count into the storage representation.
// Four-digit years only, so every written value parses back.
func formatDate(epochUTC int64) (string, error) {
	if !models.DateInRange(epochUTC) {
		return "", fmt.Errorf("%w: %d", ErrDateOutOfRange, epochUTC)
	}
	return time.Unix(epochUTC, 0).UTC().Format(storageDateLayout), nil
}

// epochTime scans a date column back into epoch-UTC seconds.
// Text values without a zone are read as UTC.
type epochTime int64

var _ sql.Scanner = (*epochTime)(nil)

func (e *epochTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*e = epochTime(v.Unix())
		return nil
	case int64:
		*e = epochTime(v)
		return nil
	case []byte:
		return e.parse(string(v))
	case string:
		return e.parse(v)
	case nil:
		return fmt.Errorf("date column is NULL")
	default:
		return fmt.Errorf("unsupported date column type %T", src)
	}
}

func (e *epochTime) parse(s string) error {
	for _, layout := range readDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*e = epochTime(t.Unix())
			return nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = epochTime(n)
		return nil
	}
	return fmt.Errorf("unrecognised date value %q", s)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat32(v *float32) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
