package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadSheet xlsx dosyasının ilk sayfasını okur. İlk satır başlık kabul
// edilir; her veri satırı başlık->hücre eşlemesi olarak döner.
func ReadSheet(r io.Reader) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("dosyada sayfa yok")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("sayfa okunamadı: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sayfa boş")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entry := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			val := ""
			if i < len(row) {
				val = strings.TrimSpace(row[i])
			}
			if val != "" {
				empty = false
			}
			entry[h] = val
		}
		// Tamamen boş satırlar atlanır.
		if !empty {
			data = append(data, entry)
		}
	}

	return headers, data, nil
}

// WriteSheet başlık ve satırlardan tek sayfalık bir xlsx üretir.
func WriteSheet(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, err
		}
	} else {
		sheetName = defaultSheet
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
