package receipts

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedName carries the period coordinates extracted from a payroll
// receipt filename of the form
// RE_<n>_<tipo>_<anio>_<quincena>_<numeroEmpleado>[_extra].pdf.
type ParsedName struct {
	Year         int
	Biweek       int
	Month        int
	Period       string
	EmployeeCode string
}

// ParseFilename extracts year, biweekly period and employee code from a
// receipt filename. The biweek number 1..24 maps two-to-one onto months:
// odd numbers are the first half of the month, even numbers the second.
func ParseFilename(name string) (ParsedName, error) {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".pdf") {
		return ParsedName{}, fmt.Errorf("%q: not a PDF file", name)
	}
	base := name[:len(name)-len(".pdf")]

	parts := strings.Split(base, "_")
	if len(parts) < 6 {
		return ParsedName{}, fmt.Errorf("%q: expected at least 6 underscore-separated fields, got %d", name, len(parts))
	}

	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return ParsedName{}, fmt.Errorf("%q: invalid year %q", name, parts[3])
	}

	biweek, err := strconv.Atoi(parts[4])
	if err != nil {
		return ParsedName{}, fmt.Errorf("%q: invalid biweek %q", name, parts[4])
	}
	if biweek < 1 || biweek > 24 {
		return ParsedName{}, fmt.Errorf("%q: biweek %d out of range 1..24", name, biweek)
	}

	code := strings.TrimSpace(parts[5])
	if code == "" {
		return ParsedName{}, fmt.Errorf("%q: empty employee code", name)
	}

	p := ParsedName{
		Year:         year,
		Biweek:       biweek,
		Month:        (biweek-1)/2 + 1,
		EmployeeCode: code,
	}
	if biweek%2 == 1 {
		p.Period = PeriodFirstHalf
	} else {
		p.Period = PeriodSecondHalf
	}
	return p, nil
}

// FileKey is the storage path for a receipt: <employeeID>/<year>/<MM>_<period>.pdf.
func FileKey(employeeID string, year, month int, period string) string {
	slug := strings.ReplaceAll(strings.ToLower(period), " ", "_")
	return fmt.Sprintf("%s/%d/%02d_%s.pdf", employeeID, year, month, slug)
}
