// Package service holds the operations that sit between the CLI/server and
// the catalog storage layer.
package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buildwise/buildwise/internal/catalog"
	"github.com/buildwise/buildwise/internal/database/repository"
)

// IngestService imports catalog items from CSV price lists.
type IngestService struct {
	Items *repository.ItemRepo
}

// IngestResult summarises one import run. Row-level problems are collected
// in Errors rather than aborting the run.
type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// ImportCSV reads a price list with columns
// code, description, unit, unit_price, category. A header row is detected
// and skipped when the price column does not parse. Rows repeating a code
// already seen in the same file are skipped; rows matching a stored code
// update it.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	seen := make(map[string]bool)
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(rec) < 5 { // code, description, unit, unit_price, category
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected 5 columns", line))
			continue
		}
		code := strings.TrimSpace(rec[0])
		if code == "" {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: empty code", line))
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
		if err != nil {
			if line == 1 {
				// Header row.
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d unit_price: %w", line, err))
			continue
		}
		if price < 0 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: negative unit_price %v", line, price))
			continue
		}

		if seen[code] {
			res.Skipped++
			continue
		}
		seen[code] = true

		it := catalog.Item{
			Code:        code,
			Description: strings.TrimSpace(rec[1]),
			Unit:        strings.TrimSpace(rec[2]),
			UnitPrice:   price,
			Category:    strings.TrimSpace(rec[4]),
		}
		if err := s.Items.Upsert(ctx, it); err != nil {
			return res, fmt.Errorf("line %d upsert %s: %w", line, code, err)
		}
		res.Imported++
	}
	return res, nil
}
