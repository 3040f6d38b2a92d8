package constants

// TireType is the category of a physical tire set. At most one
// non-archived set per type may exist on a car at a time.
type TireType string

const (
	TireSummer    TireType = "summer"
	TireWinter    TireType = "winter"
	TireAllSeason TireType = "all-season"
)

func (t TireType) Valid() bool {
	switch t {
	case TireSummer, TireWinter, TireAllSeason:
		return true
	}
	return false
}

type TireChangeType string

const (
	TireMount   TireChangeType = "mount"
	TireUnmount TireChangeType = "unmount"
)
