// Package export renders the admin record export. The output targets
// spreadsheet applications: UTF-8 with a BOM, a Korean header row, and every
// field quote-wrapped with internal quotes doubled so commas and quotes in
// names survive a round trip through any standard CSV parser.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"meetingreg/internal/domain"
)

// bom is the UTF-8 byte order mark, required for Korean text in Excel.
const bom = "\uFEFF"

var header = []string{"ID", "이름", "전화번호", "구분", "제출시간", "위임받는자", "서명여부"}

// WriteRecordsCSV writes one row per record, in the order given. Callers sort
// latest-first before exporting.
func WriteRecordsCSV(w io.Writer, records []*domain.Record, loc *time.Location) error {
	if _, err := io.WriteString(w, bom+joinRow(header)+"\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		kindLabel := "참석"
		if r.Kind == domain.KindProxy {
			kindLabel = "위임장"
		}
		delegate := r.DelegateName
		if delegate == "" {
			delegate = "-"
		}
		signed := "N"
		if r.Signature != "" {
			signed = "Y"
		}
		row := []string{
			r.ID,
			r.Name,
			r.Phone,
			kindLabel,
			formatKoreanTime(r.SubmittedAt, loc),
			delegate,
			signed,
		}
		if _, err := io.WriteString(w, joinRow(row)+"\n"); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

// joinRow quote-wraps every field, doubling internal quotes.
func joinRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// formatKoreanTime renders a timestamp the way ko-KR locales do:
// "2026. 2. 21. 오전 10:30:00".
func formatKoreanTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	meridiem := "오전"
	hour := t.Hour()
	if hour >= 12 {
		meridiem = "오후"
		if hour > 12 {
			hour -= 12
		}
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour, t.Minute(), t.Second())
}
