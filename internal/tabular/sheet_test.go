package tabular

import (
	"bytes"
	"testing"
)

func TestSheetRoundTrip(t *testing.T) {
	headers := []string{"SKU", "Quantity", "Sale Date"}
	rows := [][]string{
		{"TSH-001", "5", "2026-08-15"},
		{"", "", ""}, // boş satır okunurken atlanmalı
		{"TSH-002", "3", "15/08/2026"},
	}

	b, err := WriteSheet("Satışlar", headers, rows)
	if err != nil {
		t.Fatal(err)
	}

	gotHeaders, data, err := ReadSheet(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}

	if len(gotHeaders) != 3 || gotHeaders[0] != "SKU" || gotHeaders[2] != "Sale Date" {
		t.Fatalf("başlıklar bozuk: %v", gotHeaders)
	}
	if len(data) != 2 {
		t.Fatalf("boş satır atlanarak 2 satır beklenirdi, gelen: %d", len(data))
	}
	if data[0]["SKU"] != "TSH-001" || data[0]["Quantity"] != "5" {
		t.Fatalf("ilk satır bozuk: %v", data[0])
	}
	if data[1]["Sale Date"] != "15/08/2026" {
		t.Fatalf("ikinci satır bozuk: %v", data[1])
	}
}

func TestReadSheetEmptyFile(t *testing.T) {
	if _, _, err := ReadSheet(bytes.NewReader([]byte("bu bir xlsx değil"))); err == nil {
		t.Fatal("geçersiz dosya için hata beklenirdi")
	}
}
