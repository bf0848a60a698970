package tatortfans

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrTooManyArgs reports more than a start and an end year.
var ErrTooManyArgs = errors.New("too many command-line arguments")

// ParseYears turns the optional start and end year arguments into a range.
// Without arguments the range spans first through lastYear; a single year
// selects just that year.
func ParseYears(args []string, first, lastYear int) (int, int, error) {
	if first > lastYear {
		return 0, 0, fmt.Errorf("the first archive year %d is after %d", first, lastYear)
	}
	switch len(args) {
	case 0:
		return first, lastYear, nil
	case 1, 2:
	default:
		return 0, 0, ErrTooManyArgs
	}
	start, err := parseYear(args[0], "start", first, lastYear)
	if err != nil {
		return 0, 0, err
	}
	if len(args) == 1 {
		return start, start, nil
	}
	end, err := parseYear(args[1], "end", start, lastYear)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseYear(arg, name string, minYear, maxYear int) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil || year < minYear || year > maxYear {
		return 0, fmt.Errorf("the %s year must be a number between %d and %d", name, minYear, maxYear)
	}
	return year, nil
}
