// Package tabular Excel tabanlı toplu veri alışverişinin ortak
// parçalarını barındırır: esnek tarih çözümleme ve sayfa okuma/yazma.
package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

// ParseDate toplu yüklemelerde karşılaşılan tarih biçimlerini çözer:
// ISO, gün/ay/yıl varyantları ve Excel'in sayısal seri tarihleri.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("tarih boş")
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}

	// Excel seri numarası: 25569 = 1970-01-01. Excel'in 1900 artık yıl
	// hatası nedeniyle epoch'tan 2 gün düşülür.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 25569 {
		base := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, int(f)-2), nil
	}

	return time.Time{}, fmt.Errorf("tarih çözümlenemedi: %q", s)
}
