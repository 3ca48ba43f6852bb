package domain

import "fmt"

// Direction is the cardinal direction letter attached to a DMS angle:
// N or S for latitude, E or W for longitude.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// InvalidDirectionError indicates a DMS direction outside {N, S, E, W}.
type InvalidDirectionError struct {
	Direction Direction
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid DMS direction %q (must be one of N, S, E, W)", string(e.Direction))
}

// DMS is a degrees/minutes/seconds angle with a cardinal direction.
//
// Component values are not range-checked: minutes or seconds of 60 and above
// simply add arithmetically. The permissiveness is intentional and matches
// how the tool has always behaved.
type DMS struct {
	Degrees   float64
	Minutes   float64
	Seconds   float64
	Direction Direction
}

// DecimalDegrees converts the angle to signed decimal degrees,
// degrees + minutes/60 + seconds/3600, negated for south and west.
//
// A direction outside the four cardinal letters fails; it is never treated
// as positive. S/W results are the exact negation of the N/E results for the
// same components (a single sum, then one negation).
func (a DMS) DecimalDegrees() (float64, error) {
	dd := a.Degrees + a.Minutes/60 + a.Seconds/3600
	switch a.Direction {
	case North, East:
		return dd, nil
	case South, West:
		return -dd, nil
	}
	return 0, &InvalidDirectionError{Direction: a.Direction}
}
