package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/AnyUserName/laplace-cli/internal/partition"
	"github.com/AnyUserName/laplace-cli/internal/pipeline"
	"github.com/AnyUserName/laplace-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	runWorkers  int
	runQuality  int
	runReport   string
	runNoOrient bool
)

var runCmd = &cobra.Command{
	Use:   "run <input> <output> [workers]",
	Short: "Filter an image and write the result",
	Long: `Decodes <input> (png, jpeg, gif, bmp, tiff, webp), zeroes the green and
blue channels, applies a 3x3 Laplacian sharpen and writes <output>. The output
format follows its extension: png, jpg/jpeg, bmp, tif/tiff.

The worker count may be given as the third argument or with --workers, not
both. An output path without an extension is written as png.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", runtime.NumCPU(), "parallel workers (must be >= 1)")
	runCmd.Flags().IntVarP(&runQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = encoder default)")
	runCmd.Flags().StringVar(&runReport, "report", "", "write a JSON run report to this path")
	runCmd.Flags().BoolVar(&runNoOrient, "no-orient", false, "ignore EXIF orientation and keep pixels in stored order")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	workers := runWorkers
	if len(args) == 3 {
		if cmd.Flags().Changed("workers") {
			return fmt.Errorf("%w: worker count given both as argument %q and --workers=%d",
				partition.ErrInvalidConfig, args[2], runWorkers)
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: worker count %q is not an integer", partition.ErrInvalidConfig, args[2])
		}
		workers = n
	}

	p, err := pipeline.New(pipeline.Config{
		Workers:  workers,
		Quality:  runQuality,
		NoOrient: runNoOrient,
		Verbose:  verbose,
	})
	if err != nil {
		return err
	}

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("workers: %d", workers)

	rep, err := p.Run(absInput, absOutput)
	if err != nil {
		return err
	}

	if runReport != "" {
		if err := report.WriteJSON(rep, runReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report:  %s", runReport)
	}

	printRunReport(rep)
	return nil
}

func printRunReport(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Input:    %s  %dx%d %s (%s)\n", r.Input.Path, r.Input.Width, r.Input.Height,
		r.Input.Format, formatBytes(r.Input.Size))
	fmt.Printf("  Output:   %s  %dx%d %s (%s)\n", r.Output.Path, r.Output.Width, r.Output.Height,
		r.Output.Format, formatBytes(r.Output.Size))
	fmt.Printf("  Workers:  %d\n", r.Workers)
	fmt.Printf("  Digest:   %s\n", r.Output.PixelHash)
	fmt.Println()
	fmt.Printf("  Decode:   %s\n", formatMillis(r.Timing.DecodeMS))
	for _, name := range phaseNames(r) {
		fmt.Printf("  %-9s %s\n", name+":", formatMillis(r.Timing.PhasesMS[name]))
	}
	fmt.Printf("  Encode:   %s\n", formatMillis(r.Timing.EncodeMS))
	fmt.Printf("  Total:    %s\n", formatMillis(r.Timing.TotalMS))
	fmt.Println()
}

// phaseNames lists the phases in execution order for the default pipeline,
// followed by any others alphabetically.
func phaseNames(r *report.Report) []string {
	order := map[string]int{"color": 0, "sharpen": 1}
	var names []string
	for name := range r.Timing.PhasesMS {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
	return names
}

func formatMillis(ms float64) string {
	return time.Duration(ms * float64(time.Millisecond)).Round(time.Microsecond).String()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
