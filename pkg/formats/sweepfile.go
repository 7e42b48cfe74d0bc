package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/Faultbox/sweepcad/pkg/geom"
	"github.com/Faultbox/sweepcad/pkg/sweep"
)

// Sweep file errors.
var (
	ErrTruncatedSweepData = errors.New("truncated sweep data")
	ErrInvalidSweepKind   = errors.New("invalid sweep kind")
	ErrMalformedNumber    = errors.New("malformed number")
	ErrCountOverflow      = errors.New("point count exceeds 65535")
)

// SweepFile is the persisted form of a sweep document: the raw control
// points and sweep parameters, never the derived mesh.
//
// Layout (whitespace separated text, no header):
//
//	kind                      0 = translational, 1 = rotational
//	spans                     rotational only
//	profile point count
//	x y z                     one line per profile point
//	trajectory point count    translational only
//	x y z                     one line per trajectory point
type SweepFile struct {
	Kind       sweep.Kind
	Spans      uint16
	Profile    geom.Curve
	Trajectory geom.Curve
}

// Spec returns a sweep spec over the file's control points.
func (f *SweepFile) Spec() sweep.Spec {
	if f.Kind == sweep.Rotational {
		return sweep.NewRotational(f.Profile, int(f.Spans))
	}
	return sweep.NewTranslational(f.Profile, f.Trajectory)
}

// tokenReader hands out whitespace separated tokens.
type tokenReader struct {
	sc    *bufio.Scanner
	count int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", what, err)
		}
		return "", fmt.Errorf("%w: reading %s", ErrTruncatedSweepData, what)
	}
	t.count++
	return t.sc.Text(), nil
}

func (t *tokenReader) uint16(what string) (uint16, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q (token %d)", ErrMalformedNumber, what, tok, t.count)
	}
	return uint16(v), nil
}

func (t *tokenReader) float(what string) (float64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s = %q (token %d)", ErrMalformedNumber, what, tok, t.count)
	}
	return v, nil
}

func (t *tokenReader) curve(what string) (geom.Curve, error) {
	n, err := t.uint16(what + " point count")
	if err != nil {
		return nil, err
	}
	c := make(geom.Curve, 0, n)
	for i := 0; i < int(n); i++ {
		var p [3]float64
		for axis := range p {
			p[axis], err = t.float(fmt.Sprintf("%s point %d", what, i))
			if err != nil {
				return nil, err
			}
		}
		c = append(c, geom.Point3{X: p[0], Y: p[1], Z: p[2]})
	}
	return c, nil
}

// ReadSweep parses a sweep file from r.
func ReadSweep(r io.Reader) (*SweepFile, error) {
	tr := newTokenReader(r)

	kind, err := tr.uint16("kind")
	if err != nil {
		return nil, err
	}
	f := &SweepFile{}
	switch sweep.Kind(kind) {
	case sweep.Translational, sweep.Rotational:
		f.Kind = sweep.Kind(kind)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSweepKind, kind)
	}

	if f.Kind == sweep.Rotational {
		if f.Spans, err = tr.uint16("spans"); err != nil {
			return nil, err
		}
	}
	if f.Profile, err = tr.curve("profile"); err != nil {
		return nil, err
	}
	if f.Kind == sweep.Translational {
		if f.Trajectory, err = tr.curve("trajectory"); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ParseSweep parses a sweep file from raw bytes.
func ParseSweep(data []byte) (*SweepFile, error) {
	return ReadSweep(bytes.NewReader(data))
}

// ParseSweepFile parses a sweep file from disk.
func ParseSweepFile(path string) (*SweepFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep file: %w", err)
	}
	return ParseSweep(data)
}

// Write encodes f to w. Floats are written in the shortest form that
// parses back to the same value.
func (f *SweepFile) Write(w io.Writer) error {
	if f.Kind != sweep.Translational && f.Kind != sweep.Rotational {
		return fmt.Errorf("%w: %d", ErrInvalidSweepKind, uint8(f.Kind))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", uint8(f.Kind))
	if f.Kind == sweep.Rotational {
		fmt.Fprintf(bw, "%d\n", f.Spans)
	}
	if err := writeCurve(bw, f.Profile); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if f.Kind == sweep.Translational {
		if err := writeCurve(bw, f.Trajectory); err != nil {
			return fmt.Errorf("trajectory: %w", err)
		}
	}
	return bw.Flush()
}

func writeCurve(w *bufio.Writer, c geom.Curve) error {
	if len(c) > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrCountOverflow, len(c))
	}
	fmt.Fprintf(w, "%d\n", len(c))
	for _, p := range c {
		w.WriteString(formatFloat(p.X))
		w.WriteByte(' ')
		w.WriteString(formatFloat(p.Y))
		w.WriteByte(' ')
		w.WriteString(formatFloat(p.Z))
		w.WriteByte('\n')
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteFile replaces the file at path with the encoded sweep. The file is
// truncated first so no stale content survives from an earlier save.
func (f *SweepFile) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening sweep file: %w", err)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		out.Close()
		return fmt.Errorf("writing sweep file: %w", err)
	}
	return out.Close()
}
