package provider

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

type SafeRand struct{}

func NewSafeRand() *SafeRand {
	return &SafeRand{}
}

func (s *SafeRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(value.Int64())
}

func (s *SafeRand) Float64() float64 {
	value, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 53))
	if err != nil {
		return 0
	}
	return float64(value.Int64()) / math.Pow(2, 53)
}

// Jitter returns a duration in [base, 2*base].
func (s *SafeRand) Jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	return base + time.Duration(s.Float64()*float64(base))
}

// Sleep waits a jittered base or until ctx is done.
func (s *SafeRand) Sleep(ctx context.Context, base time.Duration) error {
	delay := s.Jitter(base)
	if delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
