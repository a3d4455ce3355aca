// Package query builds the URL query suffix understood by the ABC radio
// plays search endpoint.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// timestampFormat is the wire format for the from/to parameters:
// microsecond precision, always UTC, trailing Z.
const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Params holds the recognized search options. Every field is optional;
// nil means "not supplied" and the option is omitted from the query
// entirely. Offset zero is meaningful, so absence is a nil pointer rather
// than a zero value.
type Params struct {
	// From is the earliest play time to include. The API holds data
	// back to 2014-04-30T03:00:04+00:00.
	From *time.Time

	// To is the latest play time to include. Must not be earlier than From.
	To *time.Time

	// Station restricts results to a single station (e.g. "triplej").
	Station *string

	// Offset is the index of the first result to return.
	Offset *int

	// Limit is the page size. The API caps the effective limit at 100.
	Limit *int
}

// Time returns a pointer to t, for use in Params literals.
func Time(t time.Time) *time.Time { return &t }

// String returns a pointer to s, for use in Params literals.
func String(s string) *string { return &s }

// Int returns a pointer to n, for use in Params literals.
func Int(n int) *int { return &n }

// Encode serializes the supplied options as a query suffix.
//
// The emission order is fixed (from, to, station, offset, limit) so that
// output is deterministic; the remote API itself does not care. Timestamps
// are converted to UTC before formatting, so callers may pass values in any
// location. With no options supplied the result is the empty string, with
// at least one it begins with "?".
func (p Params) Encode() string {
	pairs := make([]string, 0, 5)
	if p.From != nil {
		pairs = append(pairs, "from="+p.From.UTC().Format(timestampFormat))
	}
	if p.To != nil {
		pairs = append(pairs, "to="+p.To.UTC().Format(timestampFormat))
	}
	if p.Station != nil {
		pairs = append(pairs, "station="+url.QueryEscape(*p.Station))
	}
	if p.Offset != nil {
		pairs = append(pairs, "offset="+strconv.Itoa(*p.Offset))
	}
	if p.Limit != nil {
		pairs = append(pairs, "limit="+strconv.Itoa(*p.Limit))
	}

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// Validate checks the supplied options for invalid combinations.
// It is called by the client before any network request is made.
func (p Params) Validate() error {
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return &ConfigurationError{
			Field:   "to",
			Message: fmt.Sprintf("to (%s) is earlier than from (%s)", p.To.Format(time.RFC3339), p.From.Format(time.RFC3339)),
		}
	}
	if p.Offset != nil && *p.Offset < 0 {
		return &ConfigurationError{Field: "offset", Message: "must not be negative"}
	}
	if p.Limit != nil && *p.Limit < 0 {
		return &ConfigurationError{Field: "limit", Message: "must not be negative"}
	}
	return nil
}

// WithOffset returns a copy of p with Offset replaced and every other
// option preserved. Pagination uses it to advance through a result set
// without mutating the caller's Params.
func (p Params) WithOffset(offset int) Params {
	p.Offset = &offset
	return p
}

// ConfigurationError reports an invalid combination of search options.
// It is returned before any network request is issued.
type ConfigurationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid search parameters: %s: %s", e.Field, e.Message)
}
