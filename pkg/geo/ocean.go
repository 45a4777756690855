package geo

// Ocean is one of the five ocean regions returned by ClassifyOcean.
type Ocean int

const (
	SouthernOcean Ocean = iota
	ArcticOcean
	PacificOcean
	AtlanticOcean
	IndianOcean
)

func (o Ocean) String() string {
	switch o {
	case SouthernOcean:
		return "Southern (Antarctic) Ocean"
	case ArcticOcean:
		return "Arctic Ocean"
	case PacificOcean:
		return "Pacific Ocean"
	case AtlanticOcean:
		return "Atlantic Ocean"
	case IndianOcean:
		return "Indian Ocean"
	default:
		return "Unknown Ocean"
	}
}

// ClassifyOcean labels a point with a coarse ocean region. It is a fallback
// for when reverse geocoding has nothing to say, not a precise classifier.
// The checks run in a fixed order and the first match wins.
func ClassifyOcean(p Point) Ocean {
	switch {
	case p.Lat < -60:
		return SouthernOcean
	case p.Lat > 66.5:
		return ArcticOcean
	case p.Lon < -70:
		return PacificOcean
	case p.Lon < 20:
		return AtlanticOcean
	case p.Lon < 100:
		return IndianOcean
	case p.Lon < 145 && p.Lat < -10:
		// transition zone south of the Indonesian archipelago
		return IndianOcean
	default:
		return PacificOcean
	}
}
