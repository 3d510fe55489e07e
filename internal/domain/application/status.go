package application

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// legacyAvailable is an old spelling of pending still found in stored rows and
// upstream payloads. It is folded into StatusPending wherever a status enters the system.
const legacyAvailable = "available"

// ParseStatus normalizes a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == legacyAvailable {
		return StatusPending, nil
	}
	switch st := Status(s); st {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", raw)
}

var transitions = map[Status]map[Status]struct{}{
	StatusPending:  {StatusApproved: {}, StatusRejected: {}, StatusCancelled: {}},
	StatusApproved: {StatusActive: {}},
	StatusActive:   {StatusCompleted: {}},
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	_, ok := transitions[from][to]
	return ok
}

// Terminal reports a status with no outgoing edges.
func (s Status) Terminal() bool { return len(transitions[s]) == 0 }

func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = ""
		return nil
	default:
		return fmt.Errorf("application status: cannot scan %T", src)
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

func (s Status) Value() (driver.Value, error) { return string(s), nil }

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}
