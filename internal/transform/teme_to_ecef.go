// Package transform converts SGP4 output between the reference frames used for
// pass prediction: TEME (inertial), ECEF (Earth-fixed), geodetic and the
// observer's topocentric horizon frame.
//
// The TEME to ECEF rotation uses GMST only (TEME → PEF ≈ ECEF). Polar motion and
// the equation of the equinoxes are ignored, which stays well under the
// precision of the element sets themselves.
//
// All distances are kilometres and all angles radians.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3-4.
package transform

import (
	"math"
	"time"
)

// PositionTEME is a position and velocity in the TEME frame.
type PositionTEME struct {
	X, Y, Z    float64 // km
	VX, VY, VZ float64 // km/s
}

// PositionECEF is a position and velocity in the ECEF frame.
type PositionECEF struct {
	X, Y, Z    float64 // km
	VX, VY, VZ float64 // km/s
}

// Radius returns the distance from Earth's centre in km.
func (p PositionTEME) Radius() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Lerp interpolates linearly between p and q; frac 0 yields p, 1 yields q.
func (p PositionTEME) Lerp(q PositionTEME, frac float64) PositionTEME {
	mix := func(a, b float64) float64 { return a + (b-a)*frac }
	return PositionTEME{
		X: mix(p.X, q.X), Y: mix(p.Y, q.Y), Z: mix(p.Z, q.Z),
		VX: mix(p.VX, q.VX), VY: mix(p.VY, q.VY), VZ: mix(p.VZ, q.VZ),
	}
}

// TEMEToECEF rotates a TEME state into ECEF at the given instant.
func TEMEToECEF(teme PositionTEME, t time.Time) PositionECEF {
	return TEMEToECEFWithGMST(teme, GMST(t))
}

// TEMEToECEFWithGMST rotates a TEME state into ECEF using a precomputed GMST angle.
//
//	r_ECEF = R3(θ) · r_TEME
//	v_ECEF = R3(θ) · v_TEME − ω × r_ECEF
func TEMEToECEFWithGMST(teme PositionTEME, gmst float64) PositionECEF {
	cosG, sinG := math.Cos(gmst), math.Sin(gmst)

	x := teme.X*cosG + teme.Y*sinG
	y := -teme.X*sinG + teme.Y*cosG

	vx := teme.VX*cosG + teme.VY*sinG
	vy := -teme.VX*sinG + teme.VY*cosG

	return PositionECEF{
		X:  x,
		Y:  y,
		Z:  teme.Z,
		VX: vx + OmegaEarth*y,
		VY: vy - OmegaEarth*x,
		VZ: teme.VZ,
	}
}

// Plausible bounds for an Earth-orbiting position, in km from the centre.
const (
	MinOrbitRadius = 6200.0
	MaxOrbitRadius = 50000.0
)

// ValidateTEME reports whether a propagated position is finite and lies in the
// plausible orbital shell. SGP4 can return garbage without flagging an error
// once a decayed element set is pushed far from its epoch.
func ValidateTEME(p PositionTEME) bool {
	for _, v := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	r := p.Radius()
	return r >= MinOrbitRadius && r <= MaxOrbitRadius
}
