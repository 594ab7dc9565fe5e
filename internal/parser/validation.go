package parser

import (
	"fmt"
)

// ValidateCoordinate validates a single geographic coordinate pair
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90.0 || lat > 90.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	if lon < -180.0 || lon > 180.0 {
		return &ErrInvalidCoordinate{Lat: lat, Lon: lon}
	}
	return nil
}

// ValidateEntryPoint checks the entry point against its coordinate system.
// Only geographic entries have fixed bounds; projected ones are accepted.
func ValidateEntryPoint(p EntryPoint, srid int) error {
	if srid != SRIDWGS84 {
		return nil
	}
	return ValidateCoordinate(p.Y, p.X)
}

// ValidateLeg checks the ranges of a parsed leg.
// Azimuth is [0, 360], inclination [-90, 90], cross-section dimensions >= 0.
func ValidateLeg(leg Leg) error {
	if leg.Azimuth < 0 || leg.Azimuth > 360 {
		return fmt.Errorf("azimuth %g out of range [0, 360]", leg.Azimuth)
	}
	if leg.Inclination < -90 || leg.Inclination > 90 {
		return fmt.Errorf("inclination %g out of range [-90, 90]", leg.Inclination)
	}
	s := leg.Section
	if s.Left < 0 || s.Right < 0 || s.Up < 0 || s.Down < 0 {
		return fmt.Errorf("negative cross-section %+v", s)
	}
	return nil
}

// Validate runs all range checks over a parsed model and returns every
// violation found, in file order. Parsing never calls it; a file with odd
// values is still a well-formed file.
func Validate(m *Model) []error {
	if m == nil {
		return []error{fmt.Errorf("model is nil")}
	}

	var errs []error
	if err := ValidateEntryPoint(m.EntryPoint, m.SRID); err != nil {
		errs = append(errs, err)
	}
	for si, set := range m.Sets {
		for li, leg := range set.Legs {
			if err := ValidateLeg(leg); err != nil {
				errs = append(errs, &ErrInvalidLeg{
					Set:    si,
					Index:  li,
					From:   leg.From,
					To:     leg.To,
					Reason: err.Error(),
				})
			}
		}
	}
	return errs
}
