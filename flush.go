package canvas

import (
	"image"
	"iter"
	"time"
)

// Flush makes the drawn pixels visible on the target.
//
// A single buffered canvas forwards the region touched since the previous
// flush. A double buffered canvas forwards the cells that differ between the
// back and front buffers and then copies back into front. When nothing was
// drawn, no writes are issued.
//
// Errors from the target are returned unchanged. The canvas state is kept as
// it was before the flush, so calling Flush again retries the same writes.
func (c *Canvas[C, M]) Flush() error {
	if c.busy {
		return ErrBusy
	}

	var (
		l     = Logger()
		debug = debugEnabled(l)
		start time.Time
		n     int
		err   error
	)
	if debug {
		start = time.Now()
	}

	switch {
	case c.full:
		n, err = c.push(c.clip)
	case c.front == nil:
		if c.dirty.Empty() {
			return nil
		}
		n, err = c.push(c.dirty.Intersect(c.clip))
	default:
		n, err = c.pushChanged()
	}
	if err != nil {
		if debug {
			l.Debug("canvas: flush failed", "strategy", c.strategy, "error", err)
		}
		return err
	}

	if c.front != nil {
		c.front.CopyFrom(c.buf)
	}
	c.dirty = image.Rectangle{}
	c.full = false

	if debug && n > 0 {
		l.Debug("canvas: flush", "strategy", c.strategy, "pixels", n, "took", time.Since(start))
	}
	return nil
}

// push forwards every cell of r.
func (c *Canvas[C, M]) push(r image.Rectangle) (n int, err error) {
	if r.Empty() {
		return 0, nil
	}
	if rd, ok := c.target.(RunDrawer[C]); ok {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if err = rd.DrawRun(image.Pt(r.Min.X, y), c.buf.Row(y, r.Min.X, r.Max.X)); err != nil {
				return
			}
			n += r.Dx()
		}
		return
	}
	err = c.target.DrawPixels(counted(c.buf.Pixels(r), &n))
	return
}

// pushChanged forwards the cells of back that differ from front.
func (c *Canvas[C, M]) pushChanged() (n int, err error) {
	if rd, ok := c.target.(RunDrawer[C]); ok {
		for p, run := range c.buf.ChangedRuns(c.front) {
			if err = rd.DrawRun(p, run); err != nil {
				return
			}
			n += len(run)
		}
		return
	}

	// Skip the target call entirely for an empty diff.
	for range c.buf.Changed(c.front) {
		err = c.target.DrawPixels(counted(c.buf.Changed(c.front), &n))
		break
	}
	return
}

func counted[V any](seq iter.Seq[V], n *int) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range seq {
			*n++
			if !yield(v) {
				return
			}
		}
	}
}
