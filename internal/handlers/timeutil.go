package handlers

import (
	"fmt"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// Date is a calendar day carried as "YYYY-MM-DD" in request bodies.
// An empty string or null leaves it zero.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(isoDate, s, time.UTC)
	if err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(isoDate) + `"`), nil
}
