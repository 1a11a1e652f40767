package draw

import "image"

// Line draws a line between two points, both included.
func Line[V any](dst Setter[V], a, b image.Point, v V) {
	switch {
	case a.Y == b.Y:
		if a.X > b.X {
			a, b = b, a
		}
		dst.FillRect(image.Rect(a.X, a.Y, b.X+1, a.Y+1), v)
	case a.X == b.X:
		if a.Y > b.Y {
			a, b = b, a
		}
		dst.FillRect(image.Rect(a.X, a.Y, a.X+1, b.Y+1), v)
	default:
		bresenham(dst, a.X, a.Y, b.X, b.Y, v)
	}
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine[V any](dst Setter[V], x, y, w int, v V) {
	dst.FillRect(image.Rect(x, y, x+w, y+1), v)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine[V any](dst Setter[V], x, y, h int, v V) {
	dst.FillRect(image.Rect(x, y, x+1, y+h), v)
}

// Rectangle draws the outline of rect.
func Rectangle[V any](dst Setter[V], rect image.Rectangle, v V) {
	rect = rect.Canon()
	if rect.Dx() <= 2 || rect.Dy() <= 2 {
		Box(dst, rect, v)
		return
	}
	var (
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X - 1, rect.Max.Y - 1
	)
	HorizontalLine(dst, x0, y0, rect.Dx(), v)
	HorizontalLine(dst, x0, y1, rect.Dx(), v)
	VerticalLine(dst, x0, y0+1, rect.Dy()-2, v)
	VerticalLine(dst, x1, y0+1, rect.Dy()-2, v)
}

// Box draws a filled rectangle.
func Box[V any](dst Setter[V], rect image.Rectangle, v V) {
	dst.FillRect(rect.Canon(), v)
}

// RoundedRectangle draws the outline of rect with radius pixels rounded corners.
func RoundedRectangle[V any](dst Setter[V], rect image.Rectangle, radius int, v V) {
	rect = rect.Canon()
	r := clampRadius(rect, radius)
	if r == 0 {
		Rectangle(dst, rect, v)
		return
	}
	var (
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X - 1, rect.Max.Y - 1
	)
	// Straight edges stop short of the arc end points.
	dst.FillRect(image.Rect(x0+r+1, y0, x1-r, y0+1), v)
	dst.FillRect(image.Rect(x0+r+1, y1, x1-r, y1+1), v)
	dst.FillRect(image.Rect(x0, y0+r+1, x0+1, y1-r), v)
	dst.FillRect(image.Rect(x1, y0+r+1, x1+1, y1-r), v)

	arc(dst, x0+r, y0+r, r, -1, -1, v)
	arc(dst, x1-r, y0+r, r, +1, -1, v)
	arc(dst, x1-r, y1-r, r, +1, +1, v)
	arc(dst, x0+r, y1-r, r, -1, +1, v)
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox[V any](dst Setter[V], rect image.Rectangle, radius int, v V) {
	rect = rect.Canon()
	r := clampRadius(rect, radius)
	if r == 0 {
		Box(dst, rect, v)
		return
	}
	var (
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X, rect.Max.Y
	)
	for dy := 0; dy < r; dy++ {
		inset := r - span(r, r-dy)
		dst.FillRect(image.Rect(x0+inset, y0+dy, x1-inset, y0+dy+1), v)
		dst.FillRect(image.Rect(x0+inset, y1-dy-1, x1-inset, y1-dy), v)
	}
	dst.FillRect(image.Rect(x0, y0+r, x1, y1-r), v)
}

// Circle draws the outline of a circle.
func Circle[V any](dst Setter[V], center image.Point, radius int, v V) {
	if radius < 0 {
		return
	}
	var (
		x, y = 0, radius
		d    = 1 - radius
	)
	for x <= y {
		for _, q := range quadrants {
			// Mirrored points on an axis repeat the positive ones.
			if !(q.X < 0 && x == 0) && !(q.Y < 0 && y == 0) {
				dst.Set(center.X+q.X*x, center.Y+q.Y*y, v)
			}
			if x != y && !(q.X < 0 && y == 0) && !(q.Y < 0 && x == 0) {
				dst.Set(center.X+q.X*y, center.Y+q.Y*x, v)
			}
		}
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// FilledCircle draws a filled circle.
func FilledCircle[V any](dst Setter[V], center image.Point, radius int, v V) {
	if radius < 0 {
		return
	}
	for dy := 0; dy <= radius; dy++ {
		w := span(radius, dy)
		dst.FillRect(image.Rect(center.X-w, center.Y+dy, center.X+w+1, center.Y+dy+1), v)
		if dy > 0 {
			dst.FillRect(image.Rect(center.X-w, center.Y-dy, center.X+w+1, center.Y-dy+1), v)
		}
	}
}

var quadrants = [4]image.Point{{+1, +1}, {-1, +1}, {-1, -1}, {+1, -1}}

// arc draws the quarter circle of radius r around (cx,cy) in the quadrant
// pointed to by the signs sx and sy.
func arc[V any](dst Setter[V], cx, cy, r, sx, sy int, v V) {
	var (
		x, y = 0, r
		d    = 1 - r
	)
	for x <= y {
		dst.Set(cx+sx*x, cy+sy*y, v)
		if x != y {
			dst.Set(cx+sx*y, cy+sy*x, v)
		}
		if d < 0 {
			d += 2*x + 3
		} else {
			d += 2*(x-y) + 5
			y--
		}
		x++
	}
}

// span is the half width of the row dy away from the center of a circle of radius r.
func span(r, dy int) int {
	w, lim := r, r*r+r
	for w > 0 && w*w+dy*dy > lim {
		w--
	}
	return w
}

func clampRadius(rect image.Rectangle, r int) int {
	if m := (rect.Dx() - 2) / 2; r > m {
		r = m
	}
	if m := (rect.Dy() - 2) / 2; r > m {
		r = m
	}
	if r < 0 {
		r = 0
	}
	return r
}

// bresenham draws a line that is neither horizontal nor vertical.
func bresenham[V any](dst Setter[V], x0, y0, x1, y1 int, v V) {
	var (
		dx, sx = abs(x1 - x0), sign(x1 - x0)
		dy, sy = -abs(y1 - y0), sign(y1 - y0)
		e      = dx + dy
	)
	for {
		dst.Set(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
