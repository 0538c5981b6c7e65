package utils

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock é o relógio real usado em produção
var SystemClock Clock = systemClock{}
