package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"
)

var ErrInvalidDelay = errors.New("invalid timelock delay")

// Duration is a timelock delay. It is encoded in JSON in the time.Duration notation ("48h0m0s").
type Duration struct {
	time.Duration
}

// NewDuration wraps a time.Duration with a Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{Duration: d}
}

// DurationFromSeconds converts a delay in seconds, as returned by getMinDelay, into a Duration.
func DurationFromSeconds(seconds *big.Int) (Duration, error) {
	if seconds == nil || seconds.Sign() < 0 {
		return Duration{}, fmt.Errorf("%w: %v", ErrInvalidDelay, seconds)
	}
	if !seconds.IsInt64() || seconds.Int64() > math.MaxInt64/int64(time.Second) {
		return Duration{}, fmt.Errorf("%w: %s seconds overflows a duration", ErrInvalidDelay, seconds)
	}

	return NewDuration(time.Duration(seconds.Int64()) * time.Second), nil
}

// String returns a string representing the duration in the form "72h3m0.5s".
func (d Duration) String() string {
	return d.Duration.String()
}

// MarshalJSON marshals the duration into JSON bytes and implements the json.Marshaler interface.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON unmarshals the duration from JSON bytes and implements the json.Unmarshaler
// interface.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		var err error
		if d.Duration, err = time.ParseDuration(value); err != nil {
			return err
		}

		return nil
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
}
