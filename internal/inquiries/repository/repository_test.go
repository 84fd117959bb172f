package repository

import (
	"strings"
	"testing"
)

// Date and timestamp columns are scanned into strings, so every one of them
// needs a text cast; pgx refuses to scan a binary-format date into *string.
func TestInquiryColumnsCastTemporalFields(t *testing.T) {
	for _, col := range []string{"date_lost::text", "created_at::text", "updated_at::text"} {
		if !strings.Contains(inquiryColumns, col) {
			t.Errorf("column list missing %q", col)
		}
	}
	if strings.Contains(inquiryColumns, "date_lost,") {
		t.Error("date_lost selected without a text cast")
	}
}
