package header

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// UnixDateWithEarlyYear is a date layout found in old mailers that neither
// net/mail nor dateparse accept.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// ParseTime reads a date field body. RFC 5322 syntax is tried first, then
// anything dateparse understands, then UnixDateWithEarlyYear.
func ParseTime(body string) (time.Time, error) {
	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}
	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}
	if t, err := time.Parse(UnixDateWithEarlyYear, body); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the named field with ParseTime. Missing and repeated fields
// are reported as Get reports them, except that a repeated field yields the
// zero time.
func (h *Header) GetTime(name string) (time.Time, error) {
	if v, ok := h.recall(name); ok {
		if t, isTime := v.(time.Time); isTime {
			return t, nil
		}
	}

	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err == nil {
		h.remember(name, body, t)
	}
	return t, err
}

// SetTime stores t in the named field using the RFC1123Z layout.
func (h *Header) SetTime(name string, t time.Time) {
	body := t.Format(time.RFC1123Z)
	h.Set(name, body)
	h.remember(name, body, t)
}

// GetDate is GetTime for the Date field.
func (h *Header) GetDate() (time.Time, error) { return h.GetTime(Date) }

// SetDate is SetTime for the Date field.
func (h *Header) SetDate(d time.Time) { h.SetTime(Date, d) }
