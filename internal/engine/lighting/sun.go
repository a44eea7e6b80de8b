// Package lighting derives the viewer's directional light.
package lighting

import "math"

// Sun is a directional light placed by two angles in degrees. Azimuth turns
// around +Y starting at +Z; Elevation rises from the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// Direction returns the unit vector pointing from the scene towards the sun.
func (s Sun) Direction() [3]float32 {
	az := float64(s.Azimuth) * math.Pi / 180
	el := float64(s.Elevation) * math.Pi / 180
	return [3]float32{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}
