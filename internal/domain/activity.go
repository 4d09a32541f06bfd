package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewActivity builds an Activity from raw form input. It returns false when
// the description is empty. An empty time becomes DefaultActivityTime and the
// price is coerced with CoercePrice.
//
// The id is a UUIDv7, so it is derived from the creation time and sorts in
// creation order.
func NewActivity(at, description, price string) (Activity, bool) {
	if description == "" {
		return Activity{}, false
	}
	if at == "" {
		at = DefaultActivityTime
	}
	return Activity{
		ID:          newActivityID(),
		Time:        at,
		Description: description,
		Price:       CoercePrice(price),
	}, true
}

// ValidTime reports whether s is a zero-padded 24-hour "HH:MM".
func ValidTime(s string) bool {
	if len(s) != 5 || strings.IndexByte(s, ':') != 2 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// CheckTime returns an ErrValidation error when s is not "HH:MM". Activity
// ordering relies on the fixed-width format.
func CheckTime(s string) error {
	if s != "" && !ValidTime(s) {
		return fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, s)
	}
	return nil
}

func newActivityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
