package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/laplace-cli/internal/hasher"
	"github.com/AnyUserName/laplace-cli/internal/partition"
	"github.com/AnyUserName/laplace-cli/internal/report"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report.json>",
	Short: "Check that a run report is consistent and its output file is intact",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	reportPath := args[0]
	r, err := report.Read(reportPath)
	if err != nil {
		return err
	}

	problems := verifyReport(r, filepath.Dir(reportPath))
	if len(problems) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %s matches file hash %s\n", r.Output.Path, r.Output.FileHash)
		return nil
	}

	fmt.Printf("  ✗ Report has %d problem(s):\n", len(problems))
	for _, p := range problems {
		fmt.Printf("    • %s\n", p)
	}
	return fmt.Errorf("verification failed with %d problems", len(problems))
}

// verifyReport returns a description of every inconsistency in r. Relative
// output paths are resolved against baseDir.
func verifyReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.Workers < 1 {
		errs = append(errs, fmt.Sprintf("invalid worker count: %d", r.Workers))
	}
	if len(r.Ranges) != r.Workers {
		errs = append(errs, fmt.Sprintf("ranges: %d entries for %d workers", len(r.Ranges), r.Workers))
	}
	if !partition.Covers(r.Ranges, r.Input.Height) {
		errs = append(errs, fmt.Sprintf("ranges %v do not tile %d rows", r.Ranges, r.Input.Height))
	}
	if r.Input.Width <= 0 || r.Input.Height <= 0 {
		errs = append(errs, fmt.Sprintf("input: invalid dimensions %dx%d", r.Input.Width, r.Input.Height))
	}
	if r.Output.Width != r.Input.Width || r.Output.Height != r.Input.Height {
		errs = append(errs, fmt.Sprintf("output %dx%d differs from input %dx%d",
			r.Output.Width, r.Output.Height, r.Input.Width, r.Input.Height))
	}
	if r.Output.PixelHash == "" {
		errs = append(errs, "output: missing pixel hash")
	}

	if r.Output.Path == "" {
		errs = append(errs, "output: missing path")
		return errs
	}
	path := r.Output.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		errs = append(errs, fmt.Sprintf("output: file not found: %s", r.Output.Path))
		return errs
	}
	if info.Size() != r.Output.Size {
		errs = append(errs, fmt.Sprintf("output: size mismatch: report=%d, disk=%d", r.Output.Size, info.Size()))
	}
	sum, err := hasher.DigestFile(path)
	if err != nil {
		errs = append(errs, fmt.Sprintf("output: %v", err))
	} else if sum != r.Output.FileHash {
		errs = append(errs, fmt.Sprintf("output: hash mismatch: report=%s, disk=%s", r.Output.FileHash, sum))
	}

	return errs
}
