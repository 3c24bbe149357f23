package types

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Number is a nullable numeric column.
// Scan never fails: NULL, unparsable text and NaN/Inf all leave Valid false.
type Number struct {
	Float64 float64
	Valid   bool
}

// NewNumber returns a valid Number when v is finite
func NewNumber(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Float64: v, Valid: true}
}

// Scan implements sql.Scanner
func (n *Number) Scan(value interface{}) error {
	*n = Number{}

	var f float64
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case int:
		f = float64(v)
	case []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	*n = NewNumber(f)
	return nil
}

// Value implements driver.Valuer
func (n Number) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Float64, nil
}

// Ptr returns nil for an invalid number
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// IntPtr truncates toward zero, nil for an invalid number
func (n Number) IntPtr() *int64 {
	if !n.Valid {
		return nil
	}
	v := int64(n.Float64)
	return &v
}

// IntOrZero truncates toward zero, 0 for an invalid number
func (n Number) IntOrZero() int64 {
	if !n.Valid {
		return 0
	}
	return int64(n.Float64)
}

const dateLayout = "2006-01-02"

// Date is a calendar date column stored as TEXT (SQLite) or DATE (PostgreSQL).
// It always renders as YYYY-MM-DD.
type Date string

// Scan implements sql.Scanner
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(dateLayout))
	case string:
		*d = Date(v)
	case []byte:
		*d = Date(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// String returns the date text
func (d Date) String() string {
	return string(d)
}

// Ptr returns nil for an empty date
func (d Date) Ptr() *string {
	if d == "" {
		return nil
	}
	s := string(d)
	return &s
}
