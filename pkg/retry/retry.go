// Package retry runs an operation with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog"
)

// Options shape the exponential backoff between attempts.
type Options struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime bounds the whole retry loop. Zero retries until ctx ends.
	MaxElapsedTime time.Duration
}

// DefaultOptions suits waiting for a dependency to come up at startup.
var DefaultOptions = Options{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     3 * time.Second,
	MaxElapsedTime:  30 * time.Second,
}

// permanentError stops the loop immediately.
type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls f until it succeeds, returns a Permanent error, the backoff gives
// up or ctx is done. Each failed attempt is logged at warn level.
func Do(ctx context.Context, name string, opts Options, log zerolog.Logger, f func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = opts.MaxInterval
	b.MaxElapsedTime = opts.MaxElapsedTime
	b.Reset()

	for tries := 1; ; tries++ {
		err := f(ctx)
		if err == nil {
			if tries > 1 {
				log.Info().Str("op", name).Int("tries", tries).Msg("retry succeeded")
			}
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		next := b.NextBackOff()
		if next == backoff.Stop {
			return fmt.Errorf("%s: giving up after %d tries: %w", name, tries, err)
		}

		log.Warn().Err(err).
			Str("op", name).
			Int("tries", tries).
			Dur("next_in", next).
			Msg("retrying")

		t := time.NewTimer(next)
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("%s: %w (last error: %v)", name, ctx.Err(), err)
		case <-t.C:
		}
	}
}
