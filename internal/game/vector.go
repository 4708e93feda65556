package game

import "math"

// Vec3 is a world position or direction. Y is the vertical axis; gameplay
// distances are measured on the X/Z ground plane.
type Vec3 struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
	Z float64 `msgpack:"z" json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length is the full 3D magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Distance is the ground-plane distance between a and b. Every range check in
// the engine (storm, bots, loot, hits) goes through here.
func Distance(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Normalize returns v scaled to unit length.
func Normalize(v Vec3) (Vec3, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Scale(1 / length), nil
}

// DirectionTo is the unit ground-plane direction from one point to another.
func DirectionTo(from, to Vec3) (Vec3, error) {
	return Normalize(to.Sub(from).Flat())
}

// Clamp restricts value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// clampToArena keeps a ground position inside [margin, size-margin] on X and Z.
func clampToArena(p Vec3, t *Tuning) Vec3 {
	lo := t.ArenaMargin
	hi := t.ArenaSize - t.ArenaMargin
	return Vec3{X: Clamp(p.X, lo, hi), Y: p.Y, Z: Clamp(p.Z, lo, hi)}
}

// insideVolume reports whether p lies in the arena bounding volume.
func insideVolume(p Vec3, t *Tuning) bool {
	return p.X >= 0 && p.X <= t.ArenaSize &&
		p.Z >= 0 && p.Z <= t.ArenaSize &&
		p.Y >= 0 && p.Y <= t.ArenaCeiling
}

func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
