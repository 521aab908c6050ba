package dataset

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/coastline-analytics/crimeplot/internal/model"
)

// LoadIncidents reads point-level crime events from a CSV extract. A .zip
// path is read in place: the first .csv entry inside the archive is decoded.
// The encoding name ("utf-8", "windows-1252", ...) selects a charset decoder
// for extracts that predate the UTF-8 exports.
func LoadIncidents(path, encoding string) ([]model.Incident, error) {
	r, closeFn, err := openIncidentSource(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open incidents %s", path)
	}
	defer closeFn()

	decoded, err := decodeCharset(r, encoding)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: incidents %s", path)
	}

	cr := csv.NewReader(decoded)
	cr.LazyQuotes = true
	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read incidents header %s", path)
	}

	var incidents []model.Incident
	for {
		var inc model.Incident
		if err := dec.Decode(&inc); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "dataset: decode incident row %d", len(incidents)+1)
		}
		incidents = append(incidents, inc)
	}

	zap.L().Info("incident dataset loaded",
		zap.String("path", path),
		zap.Int("events", len(incidents)),
	)
	return incidents, nil
}

// openIncidentSource opens either a bare CSV file or the first CSV entry of
// a ZIP archive.
func openIncidentSource(path string) (io.Reader, func(), error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, eris.Wrap(err, "open zip")
		}
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				_ = zr.Close()
				return nil, nil, eris.Wrapf(err, "open zip entry %s", f.Name)
			}
			return rc, func() { _ = rc.Close(); _ = zr.Close() }, nil
		}
		_ = zr.Close()
		return nil, nil, eris.Errorf("no .csv entry in %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "open file")
	}
	return f, func() { _ = f.Close() }, nil
}

// decodeCharset wraps r with a charset decoder when the source is not UTF-8.
func decodeCharset(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, eris.Wrapf(err, "unknown encoding %q", encoding)
	}
	return enc.NewDecoder().Reader(r), nil
}
