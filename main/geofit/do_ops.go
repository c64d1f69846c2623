package main

import (
	"encoding/json"
	"fmt"

	"github.com/neospatial/geofit/mods/ops"
	"github.com/spf13/cobra"
)

func doBuffer(cmd *cobra.Command, args []string) error {
	radius, _ := cmd.Flags().GetFloat64("radius")
	unit, _ := cmd.Flags().GetString("unit")
	bufferCRS, _ := cmd.Flags().GetString("buffer-crs")
	dissolve, _ := cmd.Flags().GetBool("dissolve")
	metadata, _ := cmd.Flags().GetBool("metadata")
	overrideCRS, _ := cmd.Flags().GetString("override-crs")
	auto, _ := cmd.Flags().GetBool("auto")
	name, _ := cmd.Flags().GetString("name")

	data, err := readInput(args)
	if err != nil {
		return err
	}
	fc, err := ops.NormalizeCollection(data)
	if err != nil {
		return err
	}

	result, err := ops.Buffer(
		[]ops.Layer{{Name: name, Collection: fc}},
		ops.BufferOptions{
			Radius:             radius,
			RadiusUnit:         unit,
			BufferCRS:          bufferCRS,
			Dissolve:           dissolve,
			AutoOptimizeCRS:    auto,
			OverrideCRS:        overrideCRS,
			ProjectionMetadata: metadata,
		})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func doArea(cmd *cobra.Command, args []string) error {
	unit, _ := cmd.Flags().GetString("unit")
	metadata, _ := cmd.Flags().GetBool("metadata")
	overrideCRS, _ := cmd.Flags().GetString("override-crs")
	auto, _ := cmd.Flags().GetBool("auto")
	name, _ := cmd.Flags().GetString("name")

	data, err := readInput(args)
	if err != nil {
		return err
	}
	fc, err := ops.NormalizeCollection(data)
	if err != nil {
		return err
	}

	result, err := ops.Area(
		ops.Layer{Name: name, Collection: fc},
		ops.AreaOptions{
			Unit:               unit,
			AutoOptimizeCRS:    auto,
			OverrideCRS:        overrideCRS,
			ProjectionMetadata: metadata,
		})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func printJSON(v any) error {
	enc, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}
