package analysis

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSXSummary writes one workbook row per feature with the eight
// regression statistics (raw and log fits), complementing the per-feature
// text reports with a single sortable table.
func WriteXLSXSummary(path, city string, results []FeatureResult) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(city)
	if err != nil {
		return eris.Wrapf(err, "analysis: add sheet %s", city)
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"feature",
		"r", "p_value", "slope_stderr", "intercept_stderr",
		"log_r", "log_p_value", "log_slope_stderr", "log_intercept_stderr",
	} {
		header.AddCell().SetString(h)
	}

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Feature)
		for _, v := range []float64{
			r.Raw.R, r.Raw.PValue, r.Raw.StderrSlope, r.Raw.StderrIntercept,
			r.Log.R, r.Log.PValue, r.Log.StderrSlope, r.Log.StderrIntercept,
		} {
			row.AddCell().SetFloatWithFormat(v, "0.000000")
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "analysis: save workbook %s", path)
	}
	return nil
}
