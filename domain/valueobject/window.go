package valueobject

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("window must be 7, 30 or 90 days")

// TrailingWindow is the look-back period a signal is assembled over.
type TrailingWindow struct {
	days int
	end  time.Time
}

func NewTrailingWindow(days int, end time.Time) (TrailingWindow, error) {
	switch days {
	case 7, 30, 90:
		return TrailingWindow{days: days, end: end}, nil
	default:
		return TrailingWindow{}, ErrInvalidWindow
	}
}

func (w TrailingWindow) Days() int {
	return w.days
}

func (w TrailingWindow) Start() time.Time {
	return w.end.AddDate(0, 0, -w.days)
}

func (w TrailingWindow) End() time.Time {
	return w.end
}
