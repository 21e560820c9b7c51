package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GiuLeo01/road-roughness/pipeline"
)

type aggFlags []string

func (a *aggFlags) String() string { return strings.Join(*a, ",") }

func (a *aggFlags) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	var aggs aggFlags
	var (
		runName   = flag.String("run", "", "Run name under the data path, e.g. PVS1")
		dataPath  = flag.String("data", "", "Dataset root directory")
		outDir    = flag.String("out", "", "Output directory")
		timesteps = flag.Int("timesteps", 200, "Approximation window length (0 disables approximation)")
		format    = flag.String("format", "parquet", "Table output format: parquet|csv")
		noLabel   = flag.Bool("no-label", false, "Omit road_condition from the approximated table")
	)
	flag.Var(&aggs, "agg", "Window aggregation fn:column[:alias], repeatable; defaults to mean of every sensor column")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --run PVS1 --data datadir --out outdir [--timesteps 200] [--format parquet|csv] [--agg mean:acc_x_L]...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*runName) == "" || strings.TrimSpace(*dataPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	aggregations, err := pipeline.ParseAggSpecs(aggs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pvs_prepare: %v\n", err)
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		RunName:      *runName,
		DataPath:     *dataPath,
		OutDir:       *outDir,
		Timesteps:    *timesteps,
		Label:        !*noLabel,
		Aggregations: aggregations,
		Format:       *format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pvs_prepare failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("pvs_prepare complete\n")
	fmt.Printf("Output dir:          %s\n", result.OutputDir)
	fmt.Printf("aligned table:       %s (%d rows)\n", result.AlignedPath, result.AlignedRows)
	if result.ApproximatedPath != "" {
		fmt.Printf("approximated table:  %s (%d rows)\n", result.ApproximatedPath, result.ApproximatedRows)
	}
	fmt.Printf("run summary:         %s\n", result.SummaryPath)
	fmt.Printf("manifest:            %s\n", result.ManifestPath)
}
