// Package report renders pass predictions and satellite overviews for people
// and for other programs. All angles leave this package in degrees and all
// times in UTC.
package report

import (
	"time"

	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/service"
	"github.com/star/orbitalik/internal/transform"
)

// degreesPerMinute converts rev/day to deg/min.
const degreesPerMinute = 360.0 / 1440.0

// PassView is the wire form of a pass.
type PassView struct {
	Satellite       string    `json:"satellite"`
	RiseTime        time.Time `json:"rise_time"`
	RiseAzimuth     float64   `json:"rise_azimuth"`
	ApogeeTime      time.Time `json:"apogee_time"`
	ApogeeElevation float64   `json:"apogee_elevation"`
	ApogeeAzimuth   float64   `json:"apogee_azimuth"`
	FallTime        time.Time `json:"fall_time"`
	FallAzimuth     float64   `json:"fall_azimuth"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// NewPassView converts p to degrees and UTC.
func NewPassView(p passes.Pass) PassView {
	return PassView{
		Satellite:       p.Satellite,
		RiseTime:        p.RiseTime.UTC(),
		RiseAzimuth:     transform.Degrees360(p.RiseAzimuth),
		ApogeeTime:      p.ApogeeTime.UTC(),
		ApogeeElevation: transform.Degrees(p.ApogeeElevation),
		ApogeeAzimuth:   transform.Degrees360(p.ApogeeAzimuth),
		FallTime:        p.FallTime.UTC(),
		FallAzimuth:     transform.Degrees360(p.FallAzimuth),
		DurationSeconds: p.Duration().Seconds(),
	}
}

// NewPassViews converts a pass list, preserving order. A nil input yields an
// empty, non-nil slice so JSON renders [].
func NewPassViews(ps []passes.Pass) []PassView {
	out := make([]PassView, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPassView(p))
	}
	return out
}

// OrbitView is the orbital summary of an element set.
type OrbitView struct {
	Inclination      float64 `json:"inclination"`
	RAAN             float64 `json:"raan"`
	Eccentricity     float64 `json:"eccentricity"`
	ArgPerigee       float64 `json:"arg_perigee"`
	MeanAnomaly      float64 `json:"mean_anomaly"`
	MeanMotion       float64 `json:"mean_motion"`         // rev/day
	MeanMotionDegMin float64 `json:"mean_motion_deg_min"` // deg/min
	PeriodMinutes    float64 `json:"period_minutes"`
	Geostationary    bool    `json:"geostationary"`
}

// TrackPoint is one sub-satellite point.
type TrackPoint struct {
	Time       time.Time `json:"time"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	AltitudeKm float64   `json:"altitude_km"`
}

// LookAngle is the observer's view of the satellite at one instant.
type LookAngle struct {
	Time      time.Time `json:"time"`
	Azimuth   float64   `json:"azimuth"`
	Elevation float64   `json:"elevation"`
	RangeKm   float64   `json:"range_km"`
}

// SatelliteView is the wire form of a satellite overview.
type SatelliteView struct {
	Name       string       `json:"name"`
	NORADID    int          `json:"norad_id"`
	Epoch      time.Time    `json:"epoch"`
	Line1      string       `json:"line1"`
	Line2      string       `json:"line2"`
	Orbit      OrbitView    `json:"orbit"`
	Trajectory []TrackPoint `json:"trajectory"`
	LookAngles []LookAngle  `json:"look_angles"`
	Passes     []PassView   `json:"passes"`
}

// NewSatelliteView converts a service overview.
func NewSatelliteView(d *service.SatelliteData) SatelliteView {
	el := d.Elements
	v := SatelliteView{
		Name:    d.Entry.Name,
		NORADID: d.Entry.NORADID,
		Epoch:   d.Entry.Epoch.UTC(),
		Line1:   d.Entry.Line1,
		Line2:   d.Entry.Line2,
		Orbit: OrbitView{
			Inclination:      el.InclinationDeg,
			RAAN:             el.RAANDeg,
			Eccentricity:     el.Eccentricity,
			ArgPerigee:       el.ArgPerigeeDeg,
			MeanAnomaly:      el.MeanAnomalyDeg,
			MeanMotion:       el.MeanMotionRevDay,
			MeanMotionDegMin: el.MeanMotionRevDay * degreesPerMinute,
			PeriodMinutes:    el.PeriodMinutes,
			Geostationary:    el.IsGeostationary,
		},
		Trajectory: make([]TrackPoint, len(d.Trajectory)),
		LookAngles: make([]LookAngle, len(d.LookAngles)),
		Passes:     NewPassViews(d.Passes),
	}
	for i, g := range d.Trajectory {
		v.Trajectory[i] = TrackPoint{
			Time:       d.TrajectoryStart.Add(time.Duration(i) * time.Second).UTC(),
			Latitude:   transform.Degrees(g.Latitude),
			Longitude:  transform.Degrees(g.Longitude),
			AltitudeKm: g.Altitude,
		}
	}
	for i, b := range d.LookAngles {
		v.LookAngles[i] = LookAngle{
			Time:      d.LookAngleStart.Add(time.Duration(i) * time.Second).UTC(),
			Azimuth:   transform.Degrees360(b.Azimuth),
			Elevation: transform.Degrees(b.Elevation),
			RangeKm:   b.RangeKm,
		}
	}
	return v
}
