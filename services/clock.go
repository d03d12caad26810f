package services

import "time"

// Clock membungkus time.Now agar tes bisa mengunci waktu.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
