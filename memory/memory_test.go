package memory

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/BeatGlow/canvas"
	"github.com/BeatGlow/canvas/pixel"
)

func pixels(ps ...canvas.Pixel[pixel.RGB888]) func(func(canvas.Pixel[pixel.RGB888]) bool) {
	return slices.Values(ps)
}

func TestTargetRecords(t *testing.T) {
	var (
		m   = New[pixel.RGB888](2, 2)
		red = pixel.RGB888{R: 0xff}
	)
	if err := m.DrawPixels(pixels(canvas.Pixel[pixel.RGB888]{Point: image.Pt(1, 1), Color: red})); err != nil {
		t.Fatal(err)
	}
	if v := m.At(1, 1); v != red {
		t.Errorf("expected %v, got %v", red, v)
	}
	if v := len(m.Writes()); v != 1 {
		t.Errorf("expected 1 write, got %d", v)
	}
	if m.Calls != 1 {
		t.Errorf("expected 1 call, got %d", m.Calls)
	}

	m.Reset()
	if v := len(m.Writes()); v != 0 {
		t.Errorf("expected no writes after reset, got %d", v)
	}
	if v := m.At(1, 1); v != red {
		t.Errorf("expected pixels to survive reset, got %v", v)
	}
}

func TestTargetBounds(t *testing.T) {
	m := New[pixel.RGB888](2, 2)
	err := m.DrawPixels(pixels(canvas.Pixel[pixel.RGB888]{Point: image.Pt(2, 0)}))
	if !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
	if err = m.FillRect(image.Rect(-1, 0, 1, 1), pixel.RGB888{}); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestTargetFailAfter(t *testing.T) {
	var (
		m    = New[pixel.RGB888](4, 1)
		fail = errors.New("bus error")
		row  = pixels(
			canvas.Pixel[pixel.RGB888]{Point: image.Pt(0, 0), Color: pixel.RGB888{R: 1}},
			canvas.Pixel[pixel.RGB888]{Point: image.Pt(1, 0), Color: pixel.RGB888{R: 2}},
			canvas.Pixel[pixel.RGB888]{Point: image.Pt(2, 0), Color: pixel.RGB888{R: 3}},
		)
	)
	m.FailAfter(2, fail)
	if err := m.DrawPixels(row); err != fail {
		t.Fatalf("expected %v, got %v", fail, err)
	}
	if v := len(m.Writes()); v != 2 {
		t.Errorf("expected 2 writes before the failure, got %d", v)
	}
	if err := m.DrawPixels(row); err != nil {
		t.Fatalf("expected failure to be one-shot, got %v", err)
	}
}

func TestRunTarget(t *testing.T) {
	m := NewRuns[pixel.RGB888](3, 2)
	if err := m.DrawRun(image.Pt(1, 1), []pixel.RGB888{{G: 1}, {G: 2}}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m.Runs, []int{2}) {
		t.Errorf("expected runs [2], got %v", m.Runs)
	}
	if v := m.At(2, 1); v.G != 2 {
		t.Errorf("expected green 2 at (2,1), got %v", v)
	}
	if err := m.DrawRun(image.Pt(2, 0), []pixel.RGB888{{}, {}}); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestImage(t *testing.T) {
	m := New[pixel.CRGB16](2, 1)
	if err := m.Clear(pixel.CRGB16{V: 0xF800}); err != nil {
		t.Fatal(err)
	}
	i := Image(m, pixel.CRGB16Channels{})
	if v := i.RGBAAt(1, 0); v != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red, got %v", v)
	}
}
