// Command orbitalik predicts satellite passes over an observer.
//
// Usage:
//
//	orbitalik serve
//	orbitalik passes --lat 55.75 --lon 37.62 --satellite "NOAA 19"
//	orbitalik satellite "ISS (ZARYA)" --lat 55.75 --lon 37.62
//
// See --help for all available options.
package main

func main() {
	Execute()
}
