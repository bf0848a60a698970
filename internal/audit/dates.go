package audit

import (
	"errors"

	"krimiwiki/internal/germandate"
)

const (
	paramPrevDate = "VG-DATUM"
	paramNextDate = "NF-DATUM"
)

// parseDate converts a German date to ISO form. It returns "" after
// reporting values it cannot read. Navigation dates may also be the
// boundary marker, which is returned as the profile's marker.
func (a *Auditor) parseDate(r *Record, param, value string) string {
	d, err := a.dates.Parse(value)
	if err != nil {
		if special, ok := a.profile.SpecialDate(r.Page, param); ok {
			if value == special.Raw {
				return special.Date
			}
		} else if isNavigationDate(param) && a.profile.IsBoundary(value) {
			return a.profile.BoundaryMarker
		}
		a.report(r, "Cannot parse date|%s=%s|", param, value)
		return ""
	}

	if d.Extra != "" && !a.regionalMark(r, param, d.Extra) {
		a.report(r, "Extra text after date|%s=%s|", param, value)
	}

	switch err := d.Validate(); {
	case errors.Is(err, germandate.ErrInvalidMonth):
		a.report(r, "Invalid month|%s=%s|", param, value)
	case errors.Is(err, germandate.ErrInvalidDay):
		a.report(r, "Invalid day|%s=%s|", param, value)
	}
	return d.ISO()
}

// regionalMark records the regional-broadcast suffix on a navigation date.
func (a *Auditor) regionalMark(r *Record, param, extra string) bool {
	if a.profile.RegionalSuffix == "" || extra != a.profile.RegionalSuffix {
		return false
	}
	switch param {
	case paramPrevDate:
		r.PrevRegional = true
	case paramNextDate:
		r.NextRegional = true
	default:
		return false
	}
	return true
}

func isNavigationDate(param string) bool {
	return param == paramPrevDate || param == paramNextDate
}
