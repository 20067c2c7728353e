package folio

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

const day = 24 * time.Hour

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, d int) Date {
	dt := Date{year, month, d}
	dt.y, dt.m, dt.d = dt.time().Date()
	return dt
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// Sub returns the number of whole days from x to d. Negative if d is before x.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / day) }

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	// Data files are written by us, so they are strictly ISO.
	on, err := time.Parse(DateFormat, str)
	if err != nil {
		return err
	}
	*d = NewDate(on.Date())
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshaler type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// months maps the 3-letter English month abbreviations broker exports use.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseFlexibleDate parses the date formats found in broker statements:
// ISO (2024-01-13), Indian day-first (13-01-2024, 13/01/24), and 3-part
// dates delimited by slash, dash or space where the month may be a 3-letter
// English abbreviation (13-Jan-2024). When both day and month are numeric
// and ambiguous (neither exceeds 12) the day-first convention wins.
//
// It reports false when the text is not a date; callers are expected to skip
// the row rather than fail the import.
func ParseFlexibleDate(text string) (Date, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, false
	}
	// Some exports glue a time onto the date; the day is all we keep.
	if i := strings.IndexByte(text, 'T'); i > 0 && strings.Contains(text, ":") {
		text = text[:i]
	}

	parts := splitDateParts(text)
	if len(parts) != 3 {
		return Date{}, false
	}

	// ISO: a 4-digit leading year is unambiguous.
	if len(parts[0]) == 4 {
		y, errY := strconv.Atoi(parts[0])
		m, okM := parseMonthPart(parts[1])
		d, errD := strconv.Atoi(parts[2])
		if errY != nil || !okM || errD != nil || d < 1 || d > 31 {
			return Date{}, false
		}
		return NewDate(y, m, d), true
	}

	// day-month-year, with the year last (2 or 4 digits).
	y, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, false
	}
	if len(parts[2]) == 2 {
		y += 2000
	} else if len(parts[2]) != 4 {
		return Date{}, false
	}

	first, errFirst := strconv.Atoi(parts[0])
	if m, ok := parseMonthName(parts[1]); ok {
		// 13-Jan-2024: the named month removes all ambiguity.
		if errFirst != nil || first < 1 || first > 31 {
			return Date{}, false
		}
		return NewDate(y, m, first), true
	}

	second, errSecond := strconv.Atoi(parts[1])
	if errFirst != nil || errSecond != nil {
		return Date{}, false
	}

	d, m := first, second
	// If one part is unambiguously a day (>12), it is the day whatever its
	// position. When both could be months, day-first (Indian convention) wins.
	if first <= 12 && second > 12 {
		d, m = second, first
	}
	if d < 1 || d > 31 || m < 1 || m > 12 {
		return Date{}, false
	}
	return NewDate(y, time.Month(m), d), true
}

// splitDateParts splits on slash, dash or space, dropping empty parts.
func splitDateParts(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '/' || r == '-' || r == ' '
	})
}

// parseMonthPart accepts a numeric month or a 3-letter abbreviation.
func parseMonthPart(part string) (time.Month, bool) {
	if m, ok := parseMonthName(part); ok {
		return m, true
	}
	n, err := strconv.Atoi(part)
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

func parseMonthName(part string) (time.Month, bool) {
	if len(part) < 3 {
		return 0, false
	}
	m, ok := months[strings.ToLower(part[:3])]
	if !ok {
		return 0, false
	}
	// "Jan" or "January", but not an arbitrary word that merely starts like one.
	if len(part) > 3 && !strings.EqualFold(part, m.String()) {
		return 0, false
	}
	return m, true
}
