package analysis

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/coastline-analytics/crimeplot/internal/stats"
)

// FeatureResult holds both fits for one demographic feature: the crime
// metric as-is and its log transform.
type FeatureResult struct {
	Feature string
	Raw     stats.Fit
	Log     stats.Fit
}

// RenderReport formats the per-feature regression report. The output is a
// pure function of the fits, byte-identical across runs on identical input.
func RenderReport(metric string, r FeatureResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Information we get from the linear regression for (%s, %s)\n", r.Feature, metric)
	writeFitBlock(&sb, r.Raw)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Information we get from the linear regression for (%s, log(%s))\n", r.Feature, metric)
	writeFitBlock(&sb, r.Log)

	return sb.String()
}

func writeFitBlock(sb *strings.Builder, fit stats.Fit) {
	fmt.Fprintf(sb, "%-25s%10.6f\n", "Correlation coefficient:", fit.R)
	fmt.Fprintf(sb, "%-25s%10.6f\n", "p-value:", fit.PValue)
	fmt.Fprintf(sb, "%-25s%10.6f\n", "Error of slope:", fit.StderrSlope)
	fmt.Fprintf(sb, "%-25s%10.6f\n", "Error of intercept:", fit.StderrIntercept)
}

// WriteReport writes the rendered report to path.
func WriteReport(path, metric string, r FeatureResult) error {
	if err := os.WriteFile(path, []byte(RenderReport(metric, r)), 0o644); err != nil {
		return eris.Wrapf(err, "analysis: write report %s", path)
	}
	return nil
}
