package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/hitchlog/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of the CSV
// and XLSX country reports.
var csvHeaders = []string{"category", "country_code", "value"}

// xlsxSheet is the name of the only worksheet in the XLSX export.
const xlsxSheet = "country_map"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportRow is one category/country pair of the flattened report.
type reportRow struct {
	category string
	code     string
	value    float64
}

// GetCountryMap handles GET /data/country_map.
// It returns the sparse country report consumed by the country map chart.
// Use ?format=csv or ?format=xlsx to receive one row per category and
// country instead.
func (s *Server) GetCountryMap(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "csv", "xlsx":
	default:
		badRequest(w, "format must be json, csv or xlsx")
		return
	}

	report, err := s.reports.CountryReport(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	switch format {
	case "csv":
		writeBody(w, "text/csv", buildCSV(report))
	case "xlsx":
		body, err := buildXLSX(report)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="country_map.xlsx"`)
		writeBody(w, xlsxContentType, body)
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func writeBody(w http.ResponseWriter, contentType string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// reportRows flattens the report into rows sorted by category, then country code.
func reportRows(report domain.CountryReport) []reportRow {
	var rows []reportRow
	for _, category := range sortedKeys(report) {
		values := report[category]
		for _, code := range sortedKeys(values) {
			rows = append(rows, reportRow{category: category, code: code, value: values[code]})
		}
	}
	return rows
}

// buildCSV writes the flattened report as CSV. Values use the shortest
// representation that round-trips (3, 0.6666666666666666).
func buildCSV(report domain.CountryReport) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, row := range reportRows(report) {
		//nolint:errcheck
		w.Write([]string{row.category, row.code, strconv.FormatFloat(row.value, 'f', -1, 64)})
	}
	w.Flush()
	return &buf
}

// buildXLSX writes the flattened report as a single-sheet workbook with
// numeric value cells.
func buildXLSX(report domain.CountryReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: rename sheet: %w", err)
	}
	header := []any{csvHeaders[0], csvHeaders[1], csvHeaders[2]}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: header: %w", err)
	}
	for i, row := range reportRows(report) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: %w", err)
		}
		values := []any{row.category, row.code, row.value}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: write: %w", err)
	}
	return buf, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
