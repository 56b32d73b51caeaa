// Package scanner turns camera frames into face scans.
//
// A SampleSource yields frames; SampleGrid reads the nine sticker colors off
// one frame; Scanner walks the faces in scan order and emits one FaceScan
// event per face on a channel. Nothing here touches a Session directly:
// Feed is the only bridge, and it goes through Session.ScanFace.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesync"
)

// ScanOrder is the order in which faces are presented to the camera.
var ScanOrder = []cubesync.Face{
	cubesync.Front, cubesync.Right, cubesync.Back,
	cubesync.Left, cubesync.Top, cubesync.Bottom,
}

// gridFraction is the share of the shorter frame side covered by the
// sticker grid, centered in the frame.
const gridFraction = 0.8

// SampleSource produces frames, one per call. It returns io.EOF when no
// more frames are available.
type SampleSource interface {
	Frame(ctx context.Context) (image.Image, error)
}

// FaceScan is one scanned face, or the error that stopped the scan.
type FaceScan struct {
	Face   cubesync.Face
	Colors []cubesync.Color
	Err    error
}

// SampleGrid classifies the nine sticker cells of a frame in row-major
// order. The grid is the centered square covering 80% of the shorter side;
// each cell is read at its center pixel.
func SampleGrid(img image.Image) [9]cubesync.Color {
	var out [9]cubesync.Color

	b := img.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	size := math.Min(width, height) * gridFraction
	startX := (width - size) / 2
	startY := (height - size) / 2
	cell := size / 3

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x := b.Min.X + int(math.Floor(startX+float64(col)*cell+cell/2))
			y := b.Min.Y + int(math.Floor(startY+float64(row)*cell+cell/2))
			r, g, bl, _ := img.At(x, y).RGBA()
			out[row*3+col] = cubesync.Classify(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return out
}

// Scanner reads one frame per face from a source.
type Scanner struct {
	src   SampleSource
	order []cubesync.Face
	log   *zap.SugaredLogger
	err   error
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithOrder overrides ScanOrder. An unknown or repeated face makes Run
// report a ValidationError before reading any frame.
func WithOrder(faces ...cubesync.Face) Option {
	return func(s *Scanner) {
		var seen [6]bool
		for _, f := range faces {
			if !f.Valid() {
				s.err = &cubesync.ValidationError{Face: f, Reason: fmt.Sprintf("unknown face %d in scan order", int(f))}
				return
			}
			if seen[f] {
				s.err = &cubesync.ValidationError{Face: f, Reason: fmt.Sprintf("%s face listed twice in scan order", f)}
				return
			}
			seen[f] = true
		}
		s.order = append([]cubesync.Face(nil), faces...)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a scanner over src.
func New(src SampleSource, opts ...Option) *Scanner {
	s := &Scanner{
		src:   src,
		order: ScanOrder,
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans every face in order and sends the results on the returned
// channel, which is closed when all faces are done, the source fails, or
// ctx is canceled. A source failure is delivered as a final event with Err
// set.
func (s *Scanner) Run(ctx context.Context) <-chan FaceScan {
	out := make(chan FaceScan)

	go func() {
		defer close(out)

		if s.err != nil {
			s.send(ctx, out, FaceScan{Err: s.err})
			return
		}

		for _, face := range s.order {
			img, err := s.src.Frame(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = fmt.Errorf("%w: no frame for %s face", cubesync.ErrScanIncomplete, face)
				}
				s.send(ctx, out, FaceScan{Face: face, Err: err})
				return
			}

			colors := SampleGrid(img)
			s.log.Debugw("frame sampled", "face", face.String(), "colors", colors)

			if !s.send(ctx, out, FaceScan{Face: face, Colors: colors[:]}) {
				return
			}
		}
	}()

	return out
}

func (s *Scanner) send(ctx context.Context, out chan<- FaceScan, ev FaceScan) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Feed applies scan events to a session until the channel closes, then
// completes the scan. It returns the first error, which leaves the faces
// scanned so far in place. Events after an error are discarded until the
// channel closes, so the sender never blocks; cancel the Run context to
// stop it sooner.
func Feed(session *cubesync.Session, events <-chan FaceScan) (string, error) {
	for ev := range events {
		err := ev.Err
		if err == nil {
			err = session.ScanFace(ev.Face, ev.Colors)
		}
		if err != nil {
			for range events {
			}
			return "", err
		}
	}
	return session.CompleteScan()
}
