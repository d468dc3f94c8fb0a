package vfs

//go:generate mockgen -source=clock.go -destination=clock_mock.go -package=vfs

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
