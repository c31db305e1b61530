package game

// Box is an axis-aligned bounding box in world space. The ground plane is
// x/z; y is vertical and only matters for hazard pits and falling vehicles.
type Box struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
}

// BoxAt builds a box centered at (x,z) with the given half extents on each
// axis. y0/y1 are absolute, not half extents, since most boxes sit on the
// ground.
func BoxAt(x, z, halfW, halfL, y0, y1 float64) Box {
	return Box{
		X0: x - halfW, Y0: y0, Z0: z - halfL,
		X1: x + halfW, Y1: y1, Z1: z + halfL,
	}
}

// Intersects reports whether the interval overlap holds on all three axes.
func (b Box) Intersects(o Box) bool {
	return b.X0 < o.X1 && b.X1 > o.X0 &&
		b.Y0 < o.Y1 && b.Y1 > o.Y0 &&
		b.Z0 < o.Z1 && b.Z1 > o.Z0
}

// Expand grows the box by pad on the x and z axes.
func (b Box) Expand(pad float64) Box {
	return Box{
		X0: b.X0 - pad, Y0: b.Y0, Z0: b.Z0 - pad,
		X1: b.X1 + pad, Y1: b.Y1, Z1: b.Z1 + pad,
	}
}

// Translate shifts the box by (dx, dz) on the ground plane.
func (b Box) Translate(dx, dz float64) Box {
	return Box{
		X0: b.X0 + dx, Y0: b.Y0, Z0: b.Z0 + dz,
		X1: b.X1 + dx, Y1: b.Y1, Z1: b.Z1 + dz,
	}
}

func (b Box) CenterX() float64 { return (b.X0 + b.X1) * 0.5 }
func (b Box) CenterZ() float64 { return (b.Z0 + b.Z1) * 0.5 }

// XZRect projects the box onto the ground plane for broadphase queries.
func (b Box) XZRect() RectF {
	return RectF{X0: b.X0, Z0: b.Z0, X1: b.X1, Z1: b.Z1}
}
