package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/star/orbitalik/internal/passes"
	"github.com/star/orbitalik/internal/service"
)

const timeLayout = "2006-01-02 15:04:05"

// MarkdownWriter writes pass tables and overviews as GitHub-flavoured Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// WritePasses writes ps as one table.
func (w *MarkdownWriter) WritePasses(ps []passes.Pass) error {
	md := markdown.NewMarkdown(w.output)
	md.H1("Satellite passes")
	md.PlainText("")
	writePassTable(md, NewPassViews(ps))
	return md.Build()
}

// WriteSatellite writes the element set, orbital summary and upcoming passes.
// Trajectory and look angle samples are summarised rather than listed.
func (w *MarkdownWriter) WriteSatellite(d *service.SatelliteData) error {
	v := NewSatelliteView(d)
	md := markdown.NewMarkdown(w.output)

	md.H1(v.Name)
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightNone, v.Line1+"\n"+v.Line2)
	md.PlainText("")

	md.H2("Orbit")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"NORAD ID", strconv.Itoa(v.NORADID)},
			{"Epoch (UTC)", v.Epoch.Format(timeLayout)},
			{"Inclination", deg(v.Orbit.Inclination)},
			{"RAAN", deg(v.Orbit.RAAN)},
			{"Eccentricity", strconv.FormatFloat(v.Orbit.Eccentricity, 'f', 7, 64)},
			{"Argument of perigee", deg(v.Orbit.ArgPerigee)},
			{"Mean anomaly", deg(v.Orbit.MeanAnomaly)},
			{"Mean motion", strconv.FormatFloat(v.Orbit.MeanMotion, 'f', 8, 64) + " rev/day"},
			{"Period", strconv.FormatFloat(v.Orbit.PeriodMinutes, 'f', 2, 64) + " min"},
		},
	})
	md.PlainText("")

	if v.Orbit.Geostationary {
		md.Note("Geostationary orbit: the satellite holds a fixed position in the sky, no passes are predicted.")
		md.PlainText("")
	} else {
		md.H2("Upcoming passes")
		md.PlainText("")
		writePassTable(md, v.Passes)
	}

	md.H2("Samples")
	md.PlainText("")
	md.BulletList(
		strconv.Itoa(len(v.Trajectory))+" ground track points from "+d.TrajectoryStart.UTC().Format(timeLayout),
		strconv.Itoa(len(v.LookAngles))+" look angles from "+d.LookAngleStart.UTC().Format(timeLayout),
	)
	return md.Build()
}

func writePassTable(md *markdown.Markdown, views []PassView) {
	if len(views) == 0 {
		md.PlainText("No passes in the requested window.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(views))
	for _, p := range views {
		rows = append(rows, []string{
			p.Satellite,
			p.RiseTime.Format(timeLayout),
			deg(p.RiseAzimuth),
			p.ApogeeTime.Format(timeLayout),
			deg(p.ApogeeElevation),
			deg(p.ApogeeAzimuth),
			p.FallTime.Format(timeLayout),
			deg(p.FallAzimuth),
			time.Duration(p.DurationSeconds * float64(time.Second)).Round(time.Second).String(),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Satellite", "Rise (UTC)", "Rise az", "Apogee (UTC)", "Max el", "Apogee az", "Fall (UTC)", "Fall az", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")
}

func deg(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "°"
}
