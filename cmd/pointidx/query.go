package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jblindsay/pointidx/geometry"
)

var rangeCmd = &cobra.Command{
	Use:   "range xmin ymin xmax ymax",
	Short: "List every point contained in the given rectangle",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		lo, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		hi, err := parsePoint(args[2], args[3])
		if err != nil {
			return err
		}
		set, err := loadSet()
		if err != nil {
			return err
		}
		start := time.Now()
		found := set.Range(geometry.NewRect(lo, hi))
		log.WithFields(logrus.Fields{
			"query":    "range",
			"matches":  len(found),
			"duration": time.Since(start),
		}).Info("query complete")
		for _, p := range found {
			fmt.Println(p)
		}
		return nil
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest x y",
	Short: "Print the member closest to (x, y)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		set, err := loadSet()
		if err != nil {
			return err
		}
		n, ok := set.Nearest(p)
		if !ok {
			return fmt.Errorf("set is empty")
		}
		fmt.Println(n)
		return nil
	},
}

var knnCmd = &cobra.Command{
	Use:   "knn x y [k]",
	Short: "Print the k members closest to (x, y), ascending by distance",
	Long:  "Print the k members closest to (x, y), ascending by distance. k defaults to the config file's k (or 1) when omitted.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		k := cfg.K
		if len(args) == 3 {
			if _, err := fmt.Sscanf(args[2], "%d", &k); err != nil {
				return fmt.Errorf("invalid k %q: %w", args[2], err)
			}
		}
		set, err := loadSet()
		if err != nil {
			return err
		}
		for _, q := range set.NearestK(p, k) {
			fmt.Println(q)
		}
		return nil
	},
}
