package cmd

import (
	"fmt"

	"github.com/AnyUserName/laplace-cli/internal/report"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <report.json>",
	Short: "Display a run report",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	r, err := report.Read(args[0])
	if err != nil {
		return err
	}
	printInspect(r)
	return nil
}

func printInspect(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Workers:          %d\n", r.Workers)
	fmt.Println()

	fmt.Println("  Row ranges:")
	for i, rr := range r.Ranges {
		note := ""
		if rr.Empty() {
			note = "  (idle)"
		}
		fmt.Printf("    worker %-3d %-14s %5d rows%s\n", i, rr.String(), rr.Len(), note)
	}
	fmt.Println()

	fmt.Printf("  Input:   %s\n", r.Input.Path)
	fmt.Printf("           %dx%d %s, %s, pixels %s\n", r.Input.Width, r.Input.Height,
		r.Input.Format, formatBytes(r.Input.Size), r.Input.PixelHash)
	fmt.Printf("  Output:  %s\n", r.Output.Path)
	fmt.Printf("           %dx%d %s, %s, file %s, pixels %s\n", r.Output.Width, r.Output.Height,
		r.Output.Format, formatBytes(r.Output.Size), r.Output.FileHash, r.Output.PixelHash)
	if r.AvgColor != nil {
		fmt.Printf("  Average: rgb(%d, %d, %d)\n", r.AvgColor[0], r.AvgColor[1], r.AvgColor[2])
	}
	fmt.Println()

	fmt.Printf("  Decode:  %s\n", formatMillis(r.Timing.DecodeMS))
	for _, name := range phaseNames(r) {
		fmt.Printf("  %-8s %s\n", name+":", formatMillis(r.Timing.PhasesMS[name]))
	}
	fmt.Printf("  Encode:  %s\n", formatMillis(r.Timing.EncodeMS))
	fmt.Printf("  Total:   %s\n", formatMillis(r.Timing.TotalMS))
	fmt.Println()
}
