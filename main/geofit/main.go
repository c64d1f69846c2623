package main

import (
	"context"
	"io"
	"os"

	"github.com/neospatial/geofit/mods"
	"github.com/neospatial/geofit/mods/logging"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "geofit [command] [flags] [args]",
		Short:         "geofit selects distortion-minimizing projections and runs geodesic/planar operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			file, _ := cmd.Flags().GetString("log-file")
			logging.Configure(&logging.Config{
				Filename:     file,
				DefaultLevel: level,
			})
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().String("log-level", "WARN", "TRACE,DEBUG,INFO,WARN,ERROR")
	rootCmd.PersistentFlags().String("log-file", ".", "log file path, '-' for stdout, '.' to discard")

	selectCmd := &cobra.Command{
		Use:   "select [flags]",
		Short: "Select the optimal projection for a bounding box and operation",
		RunE:  doSelect,
	}
	selectCmd.Flags().String("bbox", "", "`<minLon,minLat,maxLon,maxLat>` in WGS84 degrees")
	selectCmd.Flags().String("op", "BUFFER", "operation: AREA,BUFFER,OVERLAY,CLIP,DISSOLVE,SIMPLIFY,SJOIN,SJOIN_NEAREST")
	selectCmd.Flags().String("priority", "", "projection property override: CONFORMAL,EQUAL_AREA,EQUIDISTANT,COMPROMISE")
	selectCmd.Flags().String("fallback", "EPSG:3857", "fallback CRS")
	selectCmd.MarkFlagRequired("bbox")

	bufferCmd := &cobra.Command{
		Use:   "buffer [flags] [geojson file]",
		Short: "Buffer a GeoJSON layer (stdin when no file given)",
		RunE:  doBuffer,
	}
	bufferCmd.Args = cobra.MaximumNArgs(1)
	bufferCmd.Flags().Float64("radius", 0, "buffer radius")
	bufferCmd.Flags().String("unit", "meters", "radius unit: meters,kilometers,miles")
	bufferCmd.Flags().String("buffer-crs", "EPSG:3857", "static CRS when auto-optimization is off")
	bufferCmd.Flags().Bool("dissolve", false, "union all buffered geometries into one feature")
	bufferCmd.Flags().Bool("metadata", false, "attach _crs_metadata to the output collection")
	bufferCmd.Flags().String("override-crs", "", "manual CRS: EPSG:nnn or {\"authority\":\"WKT\",\"wkt\":...}")
	bufferCmd.Flags().Bool("auto", true, "auto-optimize the working CRS")
	bufferCmd.Flags().String("name", "", "layer name for error reporting")
	bufferCmd.MarkFlagRequired("radius")

	areaCmd := &cobra.Command{
		Use:   "area [flags] [geojson file]",
		Short: "Annotate a GeoJSON layer with feature areas (stdin when no file given)",
		RunE:  doArea,
	}
	areaCmd.Args = cobra.MaximumNArgs(1)
	areaCmd.Flags().String("unit", "square_meters", "area unit: square_meters,square_kilometers,hectares")
	areaCmd.Flags().Bool("metadata", false, "attach _crs_metadata to the output collection")
	areaCmd.Flags().String("override-crs", "", "manual CRS: EPSG:nnn or {\"authority\":\"WKT\",\"wkt\":...}")
	areaCmd.Flags().Bool("auto", true, "auto-optimize the working CRS")
	areaCmd.Flags().String("name", "", "layer name for error reporting")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("geofit %s (%s, %s)\n", mods.DisplayVersion(), mods.GetVersion().GitSHA, mods.BuildCompiler())
		},
	}

	rootCmd.AddCommand(
		selectCmd,
		bufferCmd,
		areaCmd,
		versionCmd,
	)
	return rootCmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
