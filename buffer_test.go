package canvas

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		width, height int
		ok            bool
	}{
		{"exact", 12, 4, 3, true},
		{"short", 11, 4, 3, false},
		{"long", 13, 4, 3, false},
		{"zero width", 0, 0, 3, false},
		{"negative", 4, -2, -2, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			_, err := NewBuffer(make([]uint8, test.size), test.width, test.height)
			if test.ok && err != nil {
				it.Fatalf("unexpected error: %v", err)
			}
			if !test.ok && !errors.Is(err, ErrConfiguration) {
				it.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func testBuffer(t *testing.T, w, h int) *Buffer[uint8] {
	t.Helper()
	b, err := NewBuffer(make([]uint8, w*h), w, h)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBufferClip(t *testing.T) {
	b := testBuffer(t, 4, 4)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		b.Set(p.X, p.Y, 1)
		if v := b.At(p.X, p.Y); v != 0 {
			t.Errorf("expected zero color at %s, got %d", p, v)
		}
	}
	for i, v := range b.Pix() {
		if v != 0 {
			t.Fatalf("out of bounds write reached cell %d", i)
		}
	}

	b.FillRect(image.Rect(-2, -2, 2, 2), 7)
	want := []uint8{
		7, 7, 0, 0,
		7, 7, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if !slices.Equal(b.Pix(), want) {
		t.Errorf("expected %v, got %v", want, b.Pix())
	}
}

func TestBufferChanged(t *testing.T) {
	var (
		back  = testBuffer(t, 3, 2)
		front = testBuffer(t, 3, 2)
	)
	if v := slices.Collect(back.Changed(front)); len(v) != 0 {
		t.Fatalf("expected no changes, got %v", v)
	}

	back.Set(2, 0, 1)
	back.Set(0, 1, 2)
	back.Set(1, 1, 3)
	want := []Pixel[uint8]{
		{Point: image.Pt(2, 0), Color: 1},
		{Point: image.Pt(0, 1), Color: 2},
		{Point: image.Pt(1, 1), Color: 3},
	}
	if v := slices.Collect(back.Changed(front)); !slices.Equal(v, want) {
		t.Errorf("expected %v, got %v", want, v)
	}

	front.CopyFrom(back)
	if v := slices.Collect(back.Changed(front)); len(v) != 0 {
		t.Errorf("expected no changes after copy, got %v", v)
	}
}

func TestBufferChangedRuns(t *testing.T) {
	var (
		back  = testBuffer(t, 5, 2)
		front = testBuffer(t, 5, 2)
	)
	copy(back.Pix(), []uint8{
		1, 1, 0, 1, 1,
		0, 2, 2, 2, 0,
	})

	type run struct {
		p      image.Point
		colors []uint8
	}
	var runs []run
	for p, colors := range back.ChangedRuns(front) {
		runs = append(runs, run{p, slices.Clone(colors)})
	}
	want := []run{
		{image.Pt(0, 0), []uint8{1, 1}},
		{image.Pt(3, 0), []uint8{1, 1}},
		{image.Pt(1, 1), []uint8{2, 2, 2}},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %v", len(want), len(runs), runs)
	}
	for i := range want {
		if runs[i].p != want[i].p || !slices.Equal(runs[i].colors, want[i].colors) {
			t.Errorf("run %d: expected %v, got %v", i, want[i], runs[i])
		}
	}
}

func TestBufferChangedStop(t *testing.T) {
	var (
		back  = testBuffer(t, 2, 2)
		front = testBuffer(t, 2, 2)
	)
	back.Fill(1)
	var n int
	for range back.Changed(front) {
		if n++; n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected iteration to stop after 2, got %d", n)
	}
}

func TestBufferPixels(t *testing.T) {
	b := testBuffer(t, 3, 3)
	v := slices.Collect(b.Pixels(image.Rect(2, 2, 5, 5)))
	if len(v) != 1 || v[0].Point != image.Pt(2, 2) {
		t.Errorf("expected only (2,2), got %v", v)
	}
}
