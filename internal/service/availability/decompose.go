package availability

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Interval полуинтервал [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Decompose режет [start, end) на подряд идущие куски по granularity минут.
// Неполный остаток в конце отбрасывается: 09:00-11:30 по 60 дает 09:00-10:00 и 10:00-11:00.
func Decompose(start, end types.TimeString, granularity int) ([]Interval, error) {
	if granularity <= 0 {
		return nil, ErrInvalidGranularity
	}
	if err := validateInterval(start, end); err != nil {
		return nil, err
	}

	endMin := end.Minutes()
	var out []Interval
	for from := start.Minutes(); from+granularity <= endMin; from += granularity {
		s, err := types.NewTimeStringFromMinutes(from)
		if err != nil {
			return nil, err
		}
		e, err := types.NewTimeStringFromMinutes(from + granularity)
		if err != nil {
			return nil, err
		}
		out = append(out, Interval{Start: s, End: e})
	}
	return out, nil
}
