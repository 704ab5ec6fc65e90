package osd

// Transforms are immutable once created; composition and inversion mint
// new handles rather than mutating existing ones.

var transforms = newRegistry[Matrix]()

// CreateTransform registers a new transform with the given components
// (a, b, c, d, tx, ty) and returns its handle.
func CreateTransform(a, b, c, d, tx, ty float64) Handle {
	return transforms.add(&Matrix{A: a, B: b, C: c, D: d, TX: tx, TY: ty})
}

// DestroyTransform releases a transform handle. Unknown handles are ignored.
func DestroyTransform(h Handle) {
	transforms.remove(h)
}

// TransformRotation creates a rotation transform
// (cos t, sin t, -sin t, cos t, 0, 0).
func TransformRotation(radians float64) Handle {
	m := Rotation(radians)
	return CreateTransform(m.A, m.B, m.C, m.D, m.TX, m.TY)
}

// TransformScale creates a scale transform (sx, 0, 0, sy, 0, 0).
func TransformScale(sx, sy float64) Handle {
	return CreateTransform(sx, 0, 0, sy, 0, 0)
}

// TransformTranslation creates a translation transform (1, 0, 0, 1, tx, ty).
func TransformTranslation(tx, ty float64) Handle {
	return CreateTransform(1, 0, 0, 1, tx, ty)
}

// TransformConcat composes two transforms ("apply b then a") and returns a
// new handle. Returns InvalidHandle if either input handle is stale.
func TransformConcat(a, b Handle) Handle {
	ma, ok := transforms.get(a)
	if !ok {
		return InvalidHandle
	}
	mb, ok := transforms.get(b)
	if !ok {
		return InvalidHandle
	}
	m := ma.Concat(*mb)
	return CreateTransform(m.A, m.B, m.C, m.D, m.TX, m.TY)
}

// TransformInvert returns a new handle holding the inverse of h, or
// InvalidHandle when h is stale or the transform is singular.
func TransformInvert(h Handle) Handle {
	m, ok := transforms.get(h)
	if !ok {
		return InvalidHandle
	}
	inv, ok := m.Invert()
	if !ok {
		return InvalidHandle
	}
	return CreateTransform(inv.A, inv.B, inv.C, inv.D, inv.TX, inv.TY)
}

// TransformGet returns the six components of a transform.
// The second result is false when the handle is stale.
func TransformGet(h Handle) (Matrix, bool) {
	m, ok := transforms.get(h)
	if !ok {
		return Matrix{}, false
	}
	return *m, true
}
