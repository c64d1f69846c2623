package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/neospatial/geofit/mods/crs"
	"github.com/neospatial/geofit/mods/geom"
	"github.com/spf13/cobra"
)

func doSelect(cmd *cobra.Command, args []string) error {
	bboxStr, _ := cmd.Flags().GetString("bbox")
	opStr, _ := cmd.Flags().GetString("op")
	priorityStr, _ := cmd.Flags().GetString("priority")
	fallback, _ := cmd.Flags().GetString("fallback")

	bbox, err := parseBBox(bboxStr)
	if err != nil {
		return err
	}
	op, err := crs.ParseOperation(opStr)
	if err != nil {
		return err
	}
	var priority crs.Property
	if priorityStr != "" {
		priority, err = crs.ParseProperty(priorityStr)
		if err != nil {
			return err
		}
	}

	sel := crs.Decide(bbox, op, priority, fallback)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Decision Step"})
	for i, step := range sel.DecisionPath {
		t.AppendRow(table.Row{i + 1, step})
	}
	t.Render()
	fmt.Printf("selected: %v (%s)\n", sel.CRSSpec(), sel.SelectionReason)

	enc, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(enc))
	return nil
}

func parseBBox(s string) (geom.BoundingBox, error) {
	toks := strings.Split(s, ",")
	if len(toks) != 4 {
		return geom.BoundingBox{}, fmt.Errorf("bbox must be minLon,minLat,maxLon,maxLat, got %q", s)
	}
	vals := make([]float64, 4)
	for i, tok := range toks {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return geom.BoundingBox{}, fmt.Errorf("bbox: %w", err)
		}
		vals[i] = v
	}
	return geom.BoundingBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}, nil
}
