// Package manifest imports box-type lists from CSV or Excel files:
// automatic delimiter detection, case-insensitive header recognition, and
// a positional fallback when no header is present.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/cratepack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of a manifest import.
type ImportResult struct {
	BoxTypes []model.BoxType
	Errors   []string
	Warnings []string
}

// columnMapping maps semantic roles to column indices.
type columnMapping struct {
	Code          int
	Width         int
	Length        int
	Height        int
	Quantity      int
	PackingMethod int
	Material      int
	PurchasingDoc int
	SortOrder     int
}

var headerAliases = map[string][]string{
	"code":           {"code", "box code", "label", "part", "item", "sku"},
	"width":          {"width", "w"},
	"length":         {"length", "l", "depth"},
	"height":         {"height", "h"},
	"quantity":       {"quantity", "qty", "count"},
	"packing_method": {"packing_method", "method", "pack method"},
	"material":       {"material", "mat"},
	"purchasing_doc": {"purchasing_doc", "po", "purchase order", "doc"},
	"sort_order":     {"sort_order", "priority", "order"},
}

// detectDelimiter picks whichever of comma/semicolon/tab/pipe produces
// the most row-count-consistent parse.
func detectDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{Code: -1, Width: -1, Length: -1, Height: -1, Quantity: -1,
		PackingMethod: -1, Material: -1, PurchasingDoc: -1, SortOrder: -1}

	found := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				found = true
				switch role {
				case "code":
					setOnce(&mapping.Code, i)
				case "width":
					setOnce(&mapping.Width, i)
				case "length":
					setOnce(&mapping.Length, i)
				case "height":
					setOnce(&mapping.Height, i)
				case "quantity":
					setOnce(&mapping.Quantity, i)
				case "packing_method":
					setOnce(&mapping.PackingMethod, i)
				case "material":
					setOnce(&mapping.Material, i)
				case "purchasing_doc":
					setOnce(&mapping.PurchasingDoc, i)
				case "sort_order":
					setOnce(&mapping.SortOrder, i)
				}
			}
		}
	}

	if !found {
		return columnMapping{Code: 0, Width: 1, Length: 2, Height: 3, Quantity: 4,
			PackingMethod: 5, Material: -1, PurchasingDoc: -1, SortOrder: -1}, false
	}
	return mapping, true
}

func setOnce(idx *int, v int) {
	if *idx == -1 {
		*idx = v
	}
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, mapping columnMapping, rowLabel string) (model.BoxType, string, string) {
	code := getCell(row, mapping.Code)
	if code == "" {
		return model.BoxType{}, fmt.Sprintf("%s: missing code", rowLabel), ""
	}

	width, err := parseFloatCell(row, mapping.Width, "width", rowLabel)
	if err != "" {
		return model.BoxType{}, err, ""
	}
	length, err2 := parseFloatCell(row, mapping.Length, "length", rowLabel)
	if err2 != "" {
		return model.BoxType{}, err2, ""
	}
	height, err3 := parseFloatCell(row, mapping.Height, "height", rowLabel)
	if err3 != "" {
		return model.BoxType{}, err3, ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	qty, qerr := strconv.Atoi(qtyStr)
	if qerr != nil {
		return model.BoxType{}, fmt.Sprintf("%s: invalid quantity '%s'", rowLabel, qtyStr), ""
	}
	if width <= 0 || length <= 0 || height <= 0 || qty <= 0 {
		return model.BoxType{}, fmt.Sprintf("%s: width, length, height, and quantity must be positive", rowLabel), ""
	}

	method := model.Carton
	var warning string
	if methodStr := getCell(row, mapping.PackingMethod); methodStr != "" {
		m := model.PackingMethod(strings.ToUpper(methodStr))
		if m.Valid() {
			method = m
		} else {
			warning = fmt.Sprintf("%s: unknown packing method '%s', defaulting to CARTON", rowLabel, methodStr)
		}
	}

	sortOrder := 0
	if soStr := getCell(row, mapping.SortOrder); soStr != "" {
		if v, e := strconv.Atoi(soStr); e == nil {
			sortOrder = v
		}
	}

	bt := model.BoxType{
		Code:          code,
		Dimensions:    model.Dimensions{W: width, L: length, H: height},
		Quantity:      qty,
		PackingMethod: method,
		Material:      getCell(row, mapping.Material),
		PurchasingDoc: getCell(row, mapping.PurchasingDoc),
		SortOrder:     sortOrder,
	}
	return bt, "", warning
}

func parseFloatCell(row []string, idx int, field, rowLabel string) (float64, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: invalid %s '%s'", rowLabel, field, raw)
	}
	return v, ""
}

// ImportCSV reads a box-type manifest from a CSV file, auto-detecting
// delimiter and header.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"file is empty"}}
	}

	delim := detectDelimiter(data)
	var warnings []string
	if delim != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delim]
		warnings = append(warnings, fmt.Sprintf("detected %s delimiter", name))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read csv: %v", err)}}
	}
	return importFromRows(records, "line", warnings)
}

// ImportExcel reads a box-type manifest from the first sheet of an xlsx
// file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot read excel data: %v", err)}}
	}
	return importFromRows(rows, "row", nil)
}

func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := detectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		result.Warnings = append(result.Warnings, "detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "width")
		}
		if mapping.Length == -1 {
			missing = append(missing, "length")
		}
		if mapping.Height == -1 {
			missing = append(missing, "height")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		bt, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.BoxTypes = append(result.BoxTypes, bt)
	}

	return result
}
