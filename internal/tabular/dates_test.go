package tabular

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"2026-08-15",
		"15/08/2026",
		"15-08-2026",
		" 2026-08-15 ",
	}
	for _, in := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("%q çözümlenemedi: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%q için %s beklenirdi, gelen: %s", in, want, got)
		}
	}
}

func TestParseDateExcelSerial(t *testing.T) {
	// 45000 = 2023-03-15
	got, err := ParseDate("45000")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("seri 45000 için %s beklenirdi, gelen: %s", want, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "dün", "2026/08/15", "123"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("%q için hata beklenirdi", in)
		}
	}
}
