// Package sweep turns profile curves into swept surface meshes by
// translation along a trajectory or rotation about the Z axis.
package sweep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/sweepcad/pkg/geom"
)

// Sweep errors.
var (
	ErrDegenerateCurve  = errors.New("degenerate curve")
	ErrInvalidSpanCount = errors.New("invalid span count")
	ErrUnknownKind      = errors.New("unknown sweep kind")
)

// Kind selects the sweep variant. Values match the persisted file format.
type Kind uint8

// Sweep kinds.
const (
	Translational Kind = 0
	Rotational    Kind = 1
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Translational:
		return "translational"
	case Rotational:
		return "rotational"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind parses a kind name ("translational", "rotational") or its
// numeric form ("0", "1").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translational", "translation", "0":
		return Translational, nil
	case "rotational", "rotation", "1":
		return Rotational, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Translational && k != Rotational {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Spec describes one sweep. Trajectory is used by Translational sweeps,
// Spans by Rotational ones.
type Spec struct {
	Kind       Kind
	Profile    geom.Curve
	Trajectory geom.Curve
	Spans      int
}

// NewTranslational returns a spec that sweeps profile along trajectory.
func NewTranslational(profile, trajectory geom.Curve) Spec {
	return Spec{Kind: Translational, Profile: profile, Trajectory: trajectory}
}

// NewRotational returns a spec that revolves profile in spans equal steps.
func NewRotational(profile geom.Curve, spans int) Spec {
	return Spec{Kind: Rotational, Profile: profile, Spans: spans}
}

// Validate checks the spec without generating anything.
func (s Spec) Validate() error {
	if len(s.Profile) < 2 {
		return fmt.Errorf("%w: profile has %d points, need at least 2", ErrDegenerateCurve, len(s.Profile))
	}
	switch s.Kind {
	case Translational:
		if len(s.Trajectory) < 2 {
			return fmt.Errorf("%w: trajectory has %d points, need at least 2", ErrDegenerateCurve, len(s.Trajectory))
		}
	case Rotational:
		if s.Spans <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSpanCount, s.Spans)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(s.Kind))
	}
	return nil
}

// RingCount returns the number of rings the spec produces.
// It is only meaningful for a valid spec.
func (s Spec) RingCount() int {
	if s.Kind == Rotational {
		return s.Spans
	}
	return len(s.Trajectory)
}

// Closed reports whether the last ring joins back to the first one.
func (s Spec) Closed() bool {
	return s.Kind == Rotational
}
