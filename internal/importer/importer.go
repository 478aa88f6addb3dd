// Package importer provides CSV, Excel and DXF import functionality for
// demand lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/PipeCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Demands  []model.Demand
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Project  int
	Material int
	Length   int
	Quantity int
}

// headerAliases maps each accepted header (lowercase) to its column role.
var headerAliases = map[string]string{
	"project": "project", "proj": "project", "job": "project", "order": "project", "customer": "project",
	"material": "material", "mat": "material", "stock": "material", "profile": "material", "type": "material", "material id": "material",
	"length": "length", "len": "length", "cut": "length", "cut length": "length", "size": "length", "mm": "length", "length mm": "length",
	"quantity": "quantity", "qty": "quantity", "count": "quantity", "num": "quantity", "amount": "quantity", "pcs": "quantity", "pieces": "quantity",
}

// positionalMapping is used for files without a recognized header.
var positionalMapping = ColumnMapping{Project: 0, Material: 1, Length: 2, Quantity: 3}

// candidateDelimiters are tried in order; earlier ones win ties.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DetectCSVDelimiter returns the delimiter that splits data into the most
// consistent rows of at least two columns. Comma is the fallback.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range candidateDelimiters {
		if score := delimiterScore(data, delim); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// delimiterScore weighs the number of rows matching the first row's column
// count above the column count itself. Single-column splits score 0.
func delimiterScore(data []byte, delim rune) int {
	records, err := readCSV(bytes.NewReader(data), delim)
	if err != nil || len(records) == 0 || len(records[0]) < 2 {
		return 0
	}
	cols := len(records[0])
	consistent := 0
	for _, row := range records {
		if len(row) == cols {
			consistent++
		}
	}
	return consistent*10 + cols
}

// DetectColumns matches a header row against the known aliases, ignoring
// case and surrounding space. The first column found for a role wins.
// When no cell is a known alias it returns the positional mapping
// (Project, Material, Length, Quantity) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Project: -1, Material: -1, Length: -1, Quantity: -1}
	slots := map[string]*int{
		"project":  &mapping.Project,
		"material": &mapping.Material,
		"length":   &mapping.Length,
		"quantity": &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		role, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		isHeader = true
		if slot := slots[role]; *slot == -1 {
			*slot = i
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseLength accepts both "1200.5" and "1200,5".
func parseLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseRow extracts demands from a row using the given column mapping.
// Returns the demands, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, lib model.Library) ([]model.Demand, string, string) {
	materialRef := getCell(row, mapping.Material)
	if materialRef == "" {
		return nil, fmt.Sprintf("%s: Missing material value", rowLabel), ""
	}
	material, ok := lib.Lookup(materialRef)
	if !ok {
		return nil, fmt.Sprintf("%s: Unknown material '%s'", rowLabel, materialRef), ""
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return nil, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := parseLength(lengthStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if !model.ValidLength(length) || qty <= 0 {
		return nil, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel), ""
	}
	if qty > model.MaxDemandCount {
		return nil, fmt.Sprintf("%s: Quantity %d exceeds the limit of %d", rowLabel, qty, model.MaxDemandCount), ""
	}

	var warning string
	if usable := material.StockLength - model.DefaultTrim; length > usable {
		warning = fmt.Sprintf("%s: Length %s exceeds usable length of '%s' (%s mm)",
			rowLabel, model.FormatLength(length), material.Name, model.FormatLength(usable))
	}

	return model.NewDemands(getCell(row, mapping.Project), material.ID, length, qty), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile imports demands from path, choosing the reader by extension.
// The project label is only used for formats that carry none (DXF).
func ImportFile(path, project string, materials []model.Material) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, materials)
	case ".dxf":
		return ImportDXF(path, project, materials)
	default:
		return ImportCSV(path, materials)
	}
}

// delimiterNames names the non-default delimiters in import warnings.
var delimiterNames = map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}

// ImportCSV imports demands from a CSV file, detecting the delimiter and
// mapping columns by header names.
func ImportCSV(path string, materials []model.Material) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if name, ok := delimiterNames[delimiter]; ok {
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}
	return importCSV(bytes.NewReader(data), delimiter, warnings, materials)
}

func importCSV(r io.Reader, delimiter rune, warnings []string, materials []model.Material) ImportResult {
	records, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}, Warnings: warnings}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}, Warnings: warnings}
	}
	return importFromRows(records, "Line", warnings, materials)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports demands from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, materials []model.Material) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil, materials)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into demands.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, materials []model.Material) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	lib := model.Library{Materials: materials}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Material == -1 {
			missing = append(missing, "Material")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No header: a non-numeric length cell means an unrecognized header.
		// Skip it but keep the positional mapping.
		if _, err := parseLength(strings.TrimSpace(rows[0][2])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		demands, errMsg, warning := parseRow(row, mapping, rowLabel, lib)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Demands = append(result.Demands, demands...)
	}

	return result
}
