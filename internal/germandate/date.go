// Package germandate parses the German long-form dates used in episode
// infoboxes and navigation templates ("6. Juni 1971", "{{0}}3.&nbsp;Jan. 1999").
package germandate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrNoMatch reports text that does not start with a German date.
	ErrNoMatch = errors.New("not a german date")
	// ErrInvalidMonth reports an unknown month word.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidDay reports a day beyond the month's length.
	ErrInvalidDay = errors.New("invalid day")
)

var datePattern = regexp.MustCompile(`^(?:\{\{0\}\})?([1-9][0-9]?)\.(?: |&nbsp;)([A-Z][a-zä]+\.?) +([12][0-9]{3})`)

// February allows the 29th regardless of the year.
var monthDays = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var standardMonths = map[string]int{
	"Januar": 1, "Jan.": 1,
	"Februar": 2, "Feb.": 2,
	"März": 3, "Mär.": 3,
	"April": 4, "Apr.": 4,
	"Mai": 5,
	"Juni": 6, "Jun.": 6,
	"Juli": 7, "Jul.": 7,
	"August": 8, "Aug.": 8,
	"September": 9, "Sep.": 9,
	"Oktober": 10, "Okt.": 10,
	"November": 11, "Nov.": 11,
	"Dezember": 12, "Dez.": 12,
	"Jänner": 1,
}

// Date is a parsed calendar date. Month is 0 when the month word was not
// recognized.
type Date struct {
	Year  int
	Month int
	Day   int
	// Extra is any text following the date.
	Extra string
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Validate reports ErrInvalidMonth or ErrInvalidDay.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	if d.Day > monthDays[d.Month-1] {
		return ErrInvalidDay
	}
	return nil
}

// Parser resolves month words, optionally with per-series aliases.
type Parser struct {
	months map[string]int
}

// NewParser returns a parser that accepts the standard month names plus the
// given aliases.
func NewParser(aliases map[string]int) *Parser {
	months := make(map[string]int, len(standardMonths)+len(aliases))
	for k, v := range standardMonths {
		months[k] = v
	}
	for k, v := range aliases {
		months[k] = v
	}
	return &Parser{months: months}
}

// Parse reads a date from the start of text. Unknown months still parse;
// call Validate on the result.
func (p *Parser) Parse(text string) (Date, error) {
	m := datePattern.FindStringSubmatchIndex(text)
	if m == nil {
		return Date{}, ErrNoMatch
	}
	day, _ := strconv.Atoi(text[m[2]:m[3]])
	year, _ := strconv.Atoi(text[m[6]:m[7]])
	return Date{
		Year:  year,
		Month: p.months[text[m[4]:m[5]]],
		Day:   day,
		Extra: text[m[1]:],
	}, nil
}

// Parse reads a date using the standard month names only.
func Parse(text string) (Date, error) {
	return defaultParser.Parse(text)
}

var defaultParser = NewParser(nil)
