// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Command pointidx is the CLI front-end for the pointset library: it loads
// a test-data file of "x y" pairs into a PointSet and answers range,
// nearest, and k-nearest-neighbor queries against it. It is the spiritual
// descendant of the teacher's go-spatial.go + tools/pluginManager.go
// dispatch-by-name main, re-expressed with cobra/pflag as spatialmodel/inmap
// does in its inmap/cmd package.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jblindsay/pointidx/geometry"
	"github.com/jblindsay/pointidx/pointio"
	"github.com/jblindsay/pointidx/pointset"
)

var (
	configFile string
	dataFile   string
	backend    string
	strictFlag bool

	cfg config
	log = logrus.StandardLogger()
)

// rootCmd is the main command, matching the teacher's single-binary,
// multi-operation dispatch shape.
var rootCmd = &cobra.Command{
	Use:   "pointidx",
	Short: "Query a 2-D point index built from a test-data file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configFile)
		if err != nil {
			return fmt.Errorf("loading config %q: %w", configFile, err)
		}
		if dataFile == "" {
			dataFile = cfg.DataFile
		}
		if !cmd.Flags().Changed("backend") && cfg.Backend != "" {
			backend = cfg.Backend
		}
		return nil
	},
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file with defaults for data-file/k/backend")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "test-data file of whitespace-separated x y pairs")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "kd", `point-set backend: "kd" or "sorted"`)
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "reject points outside [0,1]x[0,1] while loading")

	rootCmd.AddCommand(rangeCmd, nearestCmd, knnCmd, benchCmd)
}

// Execute runs the CLI; called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSet reads dataFile and builds the requested backend from its points,
// logging the operation the way spatialmodel/inmap's cmd package logs
// pipeline stages with the stdlib/logrus logger.
func loadSet() (pointset.PointSet, error) {
	if dataFile == "" {
		return nil, fmt.Errorf("no data file given: pass --data or set data_file in --config")
	}
	f, err := os.Open(dataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	start := time.Now()
	points, err := pointio.ReadPoints(f, strictFlag)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dataFile, err)
	}

	set := newSet(backend)
	for _, p := range points {
		set.Put(p)
	}
	log.WithFields(logrus.Fields{
		"file":     dataFile,
		"backend":  backend,
		"points":   set.Size(),
		"duration": time.Since(start),
	}).Info("loaded point set")
	return set, nil
}

func newSet(backend string) pointset.PointSet {
	if backend == "sorted" {
		return pointset.NewSortedPointSet()
	}
	return pointset.NewKdPointSet()
}

func parsePoint(xs, ys string) (geometry.Point, error) {
	var p geometry.Point
	if _, err := fmt.Sscanf(xs, "%g", &p.X); err != nil {
		return p, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	if _, err := fmt.Sscanf(ys, "%g", &p.Y); err != nil {
		return p, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return p, nil
}
