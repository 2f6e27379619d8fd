package tle

import (
	"io"
	"log/slog"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   25045.18032407  .00016717  00000+0  30099-3 0  9993"
	issLine2 = "2 25544  51.6412 193.5765 0003457 126.2851 233.8519 15.49874301495058"

	starlinkName  = "STARLINK-1007"
	starlinkLine1 = "1 44713U 19074A   24100.50000000  .00001000  00000-0  10000-4 0  9995"
	starlinkLine2 = "2 44713  53.0000 200.0000 0001500  90.0000 270.0000 15.06000000    05"

	geoLine2 = "2 99999   0.0500  90.0000 0002000 270.0000  90.0000  1.00270000    01"
)

func tleText(blocks ...[3]string) string {
	var s string
	for _, b := range blocks {
		s += b[0] + "\n" + b[1] + "\n" + b[2] + "\n"
	}
	return s
}

var (
	issBlock      = [3]string{issName, issLine1, issLine2}
	starlinkBlock = [3]string{starlinkName, starlinkLine1, starlinkLine2}
)
