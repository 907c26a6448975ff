package receipts

import "testing"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   ParsedName
		hasErr bool
	}{
		{
			name: "first biweek of january",
			file: "RE_3107_Quincenal_2026_1_356_753.pdf",
			want: ParsedName{Year: 2026, Biweek: 1, Month: 1, Period: PeriodFirstHalf, EmployeeCode: "356"},
		},
		{
			name: "second half of february",
			file: "RE_3107_Quincenal_2026_4_120.pdf",
			want: ParsedName{Year: 2026, Biweek: 4, Month: 2, Period: PeriodSecondHalf, EmployeeCode: "120"},
		},
		{
			name: "last biweek of the year",
			file: "RE_3107_Quincenal_2025_24_88.pdf",
			want: ParsedName{Year: 2025, Biweek: 24, Month: 12, Period: PeriodSecondHalf, EmployeeCode: "88"},
		},
		{
			name: "uppercase extension",
			file: "RE_3107_Quincenal_2026_3_356.PDF",
			want: ParsedName{Year: 2026, Biweek: 3, Month: 2, Period: PeriodFirstHalf, EmployeeCode: "356"},
		},
		{
			name:   "biweek zero rejected",
			file:   "RE_3107_Quincenal_2026_0_356.pdf",
			hasErr: true,
		},
		{
			name:   "biweek out of range",
			file:   "RE_3107_Quincenal_2026_25_356.pdf",
			hasErr: true,
		},
		{
			name:   "too few fields",
			file:   "RE_Quincenal_2026_1.pdf",
			hasErr: true,
		},
		{
			name:   "not a pdf",
			file:   "RE_3107_Quincenal_2026_1_356.docx",
			hasErr: true,
		},
		{
			name:   "non-numeric year",
			file:   "RE_3107_Quincenal_veinte_1_356.pdf",
			hasErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFilename(tc.file)
			if tc.hasErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.file)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFilename(%q): %v", tc.file, err)
			}
			if got != tc.want {
				t.Fatalf("ParseFilename(%q) = %+v, want %+v", tc.file, got, tc.want)
			}
		})
	}
}

func TestFileKey(t *testing.T) {
	got := FileKey("emp-1", 2026, 2, PeriodSecondHalf)
	want := "emp-1/2026/02_2da_quincena.pdf"
	if got != want {
		t.Fatalf("FileKey = %q, want %q", got, want)
	}
}
