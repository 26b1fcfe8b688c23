package services

import (
	"testing"
	"time"
)

func TestSolarZodiacCoversLeapYear(t *testing.T) {
	t.Parallel()

	counts := make(map[string]int)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for cursor := start; cursor.Year() == 2024; cursor = cursor.AddDate(0, 0, 1) {
		sign := SolarZodiac(cursor.Day(), int(cursor.Month()))
		if !IsSolarSign(sign) {
			t.Fatalf("SolarZodiac(%s) = %q, not a known sign", cursor.Format("01-02"), sign)
		}
		counts[sign]++
	}

	if len(counts) != len(SolarSigns) {
		t.Fatalf("expected all %d signs across the year, got %d", len(SolarSigns), len(counts))
	}
	total := 0
	for _, count := range counts {
		total += count
	}
	if total != 366 {
		t.Fatalf("expected 366 classified days, got %d", total)
	}
}

func TestSolarZodiacIsConstantWithinPublishedRanges(t *testing.T) {
	t.Parallel()

	ranges := []struct {
		sign       string
		startMonth time.Month
		startDay   int
		endMonth   time.Month
		endDay     int
	}{
		{"capricorn", time.December, 22, time.January, 19},
		{"aquarius", time.January, 20, time.February, 18},
		{"pisces", time.February, 19, time.March, 20},
		{"aries", time.March, 21, time.April, 19},
		{"taurus", time.April, 20, time.May, 20},
		{"gemini", time.May, 21, time.June, 20},
		{"cancer", time.June, 21, time.July, 22},
		{"leo", time.July, 23, time.August, 22},
		{"virgo", time.August, 23, time.September, 22},
		{"libra", time.September, 23, time.October, 22},
		{"scorpio", time.October, 23, time.November, 21},
		{"sagittarius", time.November, 22, time.December, 21},
	}

	for _, tc := range ranges {
		start := time.Date(2023, tc.startMonth, tc.startDay, 0, 0, 0, 0, time.UTC)
		end := time.Date(2023, tc.endMonth, tc.endDay, 0, 0, 0, 0, time.UTC)
		if end.Before(start) {
			end = end.AddDate(1, 0, 0)
		}
		for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
			if got := SolarZodiac(cursor.Day(), int(cursor.Month())); got != tc.sign {
				t.Fatalf("SolarZodiac(%d, %d) = %q, want %q", cursor.Day(), cursor.Month(), got, tc.sign)
			}
		}
	}
}

func TestSolarZodiacBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day   int
		month int
		want  string
	}{
		{1, 5, "taurus"},
		{20, 5, "taurus"},
		{21, 5, "gemini"},
		{15, 5, "taurus"},
		{31, 12, "capricorn"},
		{1, 1, "capricorn"},
		{29, 2, "pisces"},
		{21, 11, "scorpio"},
		{22, 11, "sagittarius"},
		{21, 12, "sagittarius"},
	}
	for _, tc := range tests {
		if got := SolarZodiac(tc.day, tc.month); got != tc.want {
			t.Fatalf("SolarZodiac(%d, %d) = %q, want %q", tc.day, tc.month, got, tc.want)
		}
	}
}

func TestCyclicalYearSignReferenceYears(t *testing.T) {
	t.Parallel()

	tests := map[int]string{
		4:    "Rat",
		1984: "Rat",
		1990: "Horse",
		1992: "Monkey",
		2000: "Dragon",
		2024: "Dragon",
		2025: "Snake",
		2026: "Horse",
		3:    "Pig",
	}
	for year, want := range tests {
		if got := CyclicalYearSign(year); got != want {
			t.Fatalf("CyclicalYearSign(%d) = %q, want %q", year, got, want)
		}
	}
}

func TestCyclicalYearSignIsPeriodic(t *testing.T) {
	t.Parallel()

	for year := -500; year <= 3000; year++ {
		if CyclicalYearSign(year) != CyclicalYearSign(year+12) {
			t.Fatalf("CyclicalYearSign(%d) != CyclicalYearSign(%d)", year, year+12)
		}
	}
}
