package tatortfans

import (
	"errors"
	"testing"
)

func TestParseYears(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantStart int
		wantEnd   int
		wantErr   string
	}{
		{name: "defaults", args: nil, wantStart: 1970, wantEnd: 2027},
		{name: "single year", args: []string{"1985"}, wantStart: 1985, wantEnd: 1985},
		{name: "range", args: []string{"1985", "1990"}, wantStart: 1985, wantEnd: 1990},
		{name: "start too early", args: []string{"1969"}, wantErr: "the start year must be a number between 1970 and 2027"},
		{name: "not a number", args: []string{"abc"}, wantErr: "the start year must be a number between 1970 and 2027"},
		{name: "end before start", args: []string{"1990", "1985"}, wantErr: "the end year must be a number between 1990 and 2027"},
		{name: "end too late", args: []string{"1990", "2028"}, wantErr: "the end year must be a number between 1990 and 2027"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ParseYears(tt.args, 1970, 2027)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("got %d..%d, want %d..%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	if _, _, err := ParseYears([]string{"1970", "1971", "1972"}, 1970, 2027); !errors.Is(err, ErrTooManyArgs) {
		t.Fatalf("expected ErrTooManyArgs, got %v", err)
	}
}

func TestParseYearsFirstAfterLast(t *testing.T) {
	if _, _, err := ParseYears(nil, 2030, 2027); err == nil {
		t.Fatal("expected error when the first archive year is after the last")
	}
}
