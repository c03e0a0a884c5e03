package geom

import "math"

// GoldenAngle is π(3-√5), about 2.39996 radians.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// FibonacciSphere distributes n points over a sphere of the given radius.
// Index 0 sits at the north pole and index n-1 at the south pole; y falls
// linearly in between while the azimuth advances by GoldenAngle per index.
// A single point is placed at the north pole (y = 1) so the formula never
// divides by n-1 == 0.
func FibonacciSphere(n int, radius float64) []Vec3 {
	if n <= 0 {
		return []Vec3{}
	}
	out := make([]Vec3, n)
	for i := 0; i < n; i++ {
		y := 1.0
		if n > 1 {
			y = 1 - (float64(i)/float64(n-1))*2
		}
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := float64(i) * GoldenAngle
		out[i] = Vec3{
			X: math.Cos(theta) * r * radius,
			Y: y * radius,
			Z: math.Sin(theta) * r * radius,
		}
	}
	return out
}
