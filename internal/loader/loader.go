// Package loader reads the reef feature attribute table from CSV and
// validates it against the input contract before any metric is computed.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/reef-data/depthclass.report/internal/monitoring"
	"github.com/reef-data/depthclass.report/internal/reef"
)

// Required attribute columns. Only attributes are read; feature geometry is
// out of scope here.
var requiredColumns = []string{"ID", "ReefID", "AHO_DEPTH", "V_SHALLOW", "NVCL_Eco"}

// Load reads a feature dataset from the CSV file at path. expectedRows > 0
// enables the row-count sanity check; a mismatch is a fatal validation
// error. All validation failures surface as *reef.ValidationError.
func Load(path string, expectedRows int) (*reef.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, expectedRows)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// Read parses and validates a feature dataset from CSV content.
func Read(r io.Reader, expectedRows int) (*reef.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, reef.Validatef("missing header row: %v", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, reef.Validatef("missing required column %q", name)
		}
	}

	var features []reef.Feature
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, reef.Validatef("row %d: %v", line+1, err)
		}
		line++

		depth, err := strconv.ParseFloat(rec[col["AHO_DEPTH"]], 64)
		if err != nil {
			return nil, reef.Validatef("row %d: AHO_DEPTH %q is not numeric", line, rec[col["AHO_DEPTH"]])
		}

		vs, err := parseFlag(rec[col["V_SHALLOW"]])
		if err != nil {
			return nil, reef.Validatef("row %d: %v", line, err)
		}

		features = append(features, reef.Feature{
			ID:          rec[col["ID"]],
			ReefID:      rec[col["ReefID"]],
			DepthMeters: depth,
			VeryShallow: vs,
			EcoLabel:    rec[col["NVCL_Eco"]],
		})
	}

	if expectedRows > 0 && len(features) != expectedRows {
		return nil, reef.Validatef("expected %d rows, found %d", expectedRows, len(features))
	}

	ds := reef.NewDataset(features)
	if inconsistent := ds.Inconsistent(); len(inconsistent) > 0 {
		for _, f := range inconsistent {
			monitoring.Logf("QA: feature %s (reef %s) has very-shallow flag but ecological label %q; retained",
				f.ID, f.ReefID, f.EcoLabel)
		}
	}
	return ds, nil
}

// parseFlag accepts the 0/1 encoding used by the attribute table.
func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("V_SHALLOW must be 0 or 1, got %q", s)
}
