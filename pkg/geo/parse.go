package geo

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// 34°3'8"N, 34° 3' 8.25" S, 118°14'37W
	dmsPattern = regexp.MustCompile(`^(\d+)\s*°\s*(\d+)\s*['′]\s*(\d+(?:\.\d+)?)\s*(?:"|″|'')?\s*([A-Za-z])$`)

	// 34°3.133'N
	ddmPattern = regexp.MustCompile(`^(\d+)\s*°\s*(\d+(?:\.\d+)?)\s*['′]\s*([A-Za-z])$`)
)

// sexagesimal is one coordinate grammar. It reports the unsigned magnitude
// and the hemisphere letter, or ok=false when the text does not match.
type sexagesimal func(s string) (magnitude float64, hemisphere string, ok bool)

// grammars are tried in order. DMS goes first: it is the more specific form.
var grammars = []sexagesimal{parseDMS, parseDDM}

func parseDMS(s string) (float64, string, bool) {
	m := dmsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	deg, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	return deg + minutes/60 + seconds/3600, m[4], true
}

func parseDDM(s string) (float64, string, bool) {
	m := ddmPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	deg, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	return deg + minutes/60, m[3], true
}

// ParseCoordinate converts a single latitude or longitude token to signed
// decimal degrees. Numbers and decimal text are returned unchanged; other
// text must be DMS or DDM with a hemisphere letter. No range check is done.
func ParseCoordinate(token any) (float64, error) {
	s, isText := token.(string)
	if !isText {
		f, err := Number(token)
		if err != nil {
			return 0, Errorf(KindType, "parse coordinate", "coordinate must be text or numeric, got %T", token)
		}
		return f, nil
	}

	s = strings.TrimSpace(s)
	if f, ok := parseDecimal(s); ok {
		return f, nil
	}

	for _, parse := range grammars {
		magnitude, hemisphere, ok := parse(s)
		if !ok {
			continue
		}
		switch strings.ToUpper(hemisphere) {
		case "N", "E":
			return magnitude, nil
		case "S", "W":
			return -magnitude, nil
		default:
			return 0, Errorf(KindFormat, "parse coordinate",
				"invalid hemisphere %q in %q: must be one of N, S, E, W", hemisphere, s)
		}
	}

	return 0, Errorf(KindFormat, "parse coordinate",
		"unrecognized coordinate %q: expected decimal degrees, DMS (34°3'8\"N) or DDM (34°3.133'N)", s)
}

// parseDecimal reads plain decimal text. Overflowing values come back as
// ±Inf so the range check rejects them; hexadecimal floats are not decimal.
func parseDecimal(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// Standardize parses a latitude and longitude token pair and validates the
// result. Tokens that parse but fall outside the valid bounds report a
// KindRange error, not a format error.
func Standardize(latToken, lonToken any) (Point, error) {
	lat, err := ParseCoordinate(latToken)
	if err != nil {
		return Point{}, err
	}
	lon, err := ParseCoordinate(lonToken)
	if err != nil {
		return Point{}, err
	}

	p := Point{Lat: lat, Lon: lon}
	if p.Validate() != nil {
		return Point{}, Errorf(KindRange, "standardize",
			"Latitude must be between -90 and 90 and longitude between -180 and 180. Got (%v, %v).", lat, lon)
	}
	return p, nil
}

// Axis selects the hemisphere letters used by FormatDMS.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// FormatDMS renders decimal degrees as DMS text, e.g. 34°3'8"N.
// Seconds are rounded to four decimals.
func FormatDMS(value float64, axis Axis) string {
	hemisphere := "N"
	if axis == Longitude {
		hemisphere = "E"
	}
	if value < 0 {
		if axis == Longitude {
			hemisphere = "W"
		} else {
			hemisphere = "S"
		}
	}

	abs := math.Abs(value)
	deg := math.Floor(abs)
	minutes := math.Floor((abs - deg) * 60)
	seconds := math.Round(((abs-deg)*60-minutes)*60*1e4) / 1e4

	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		deg++
	}

	var b strings.Builder
	b.WriteString(strconv.FormatFloat(deg, 'f', 0, 64))
	b.WriteString("°")
	b.WriteString(strconv.FormatFloat(minutes, 'f', 0, 64))
	b.WriteString("'")
	b.WriteString(strconv.FormatFloat(seconds, 'f', -1, 64))
	b.WriteString(`"`)
	b.WriteString(hemisphere)
	return b.String()
}
