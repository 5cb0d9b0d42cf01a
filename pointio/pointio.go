// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package pointio reads and writes the plain-text test-data format: files
// of whitespace-separated "x y" pairs, one coordinate pair scanned at a
// time until end of stream. Unlike the teacher's geospatialfiles/raster
// readers, which parse headers, nodata values, and full grids, this reader
// only ever has to make sense of a flat stream of numbers, so it has no
// header/config notion to carry.
package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jblindsay/pointidx/geometry"
)

// Sentinel errors for malformed test-data streams, in the teacher's
// geospatialfiles/raster/rasterErrors.go idiom of package-level errors.New
// values rather than custom error types.
var (
	// ErrOddFieldCount is returned when the stream ends in the middle of an
	// (x, y) pair.
	ErrOddFieldCount = errors.New("pointio: stream ended with an unpaired coordinate")
	// ErrMalformedPoint is returned when a coordinate field cannot be parsed
	// as a float64.
	ErrMalformedPoint = errors.New("pointio: malformed coordinate field")
	// ErrPointOutOfRange is returned by ReadPoints when strict is requested
	// and a point falls outside [0,1]x[0,1]. It is a convenience for
	// callers, not a library-level invariant: KdPointSet itself never
	// checks this (see SPEC_FULL.md §11, Open Question Decisions).
	ErrPointOutOfRange = errors.New("pointio: point outside [0,1]x[0,1]")
)

// ReadPoints reads whitespace-separated "x y" pairs from r until EOF,
// returning them in file order. If strict is true, a point outside the
// unit square causes ReadPoints to stop and return ErrPointOutOfRange
// wrapped with the offending point's 1-based pair index.
func ReadPoints(r io.Reader, strict bool) ([]geometry.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var points []geometry.Point
	pairIndex := 0
	for {
		x, xOK, err := nextFloat(scanner)
		if err != nil {
			return points, err
		}
		if !xOK {
			return points, nil
		}
		y, yOK, err := nextFloat(scanner)
		if err != nil {
			return points, err
		}
		if !yOK {
			return points, ErrOddFieldCount
		}
		pairIndex++
		p := geometry.Point{X: x, Y: y}
		if strict && !geometry.UnitSquare.Contains(p) {
			return points, fmt.Errorf("%w: pair %d, %v", ErrPointOutOfRange, pairIndex, p)
		}
		points = append(points, p)
	}
}

func nextFloat(scanner *bufio.Scanner) (value float64, ok bool, err error) {
	if !scanner.Scan() {
		return 0, false, scanner.Err()
	}
	v, err := strconv.ParseFloat(scanner.Text(), 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %q", ErrMalformedPoint, scanner.Text())
	}
	return v, true, nil
}

// WritePoints writes pts to w as whitespace-separated "x y" pairs, one pair
// per line, in the order given.
func WritePoints(w io.Writer, pts []geometry.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		if _, err := fmt.Fprintf(bw, "%v %v\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}
