package reportgrid

import "time"

type ageBand struct {
	months int
	code   string
	text   string
}

var attestationBands = []ageBand{
	{1, "<1M", "<1 Month"},
	{3, "<3M", "1-3 Months"},
	{6, "<6M", "3-6 Months"},
	{12, "<1Y", "6-12 Months"},
}

// AttestationBand buckets the age of an attestation relative to now. An
// attestation exactly on a band boundary falls into the older band.
func AttestationBand(now, attestedAt time.Time) (code, text string) {
	for _, b := range attestationBands {
		if attestedAt.After(minusMonths(now, b.months)) {
			return b.code, b.text
		}
	}
	return ">1Y", ">1 Year"
}

// minusMonths steps back whole calendar months, clamping the day to the last
// day of the target month (Mar 31 minus one month is Feb 29, not Mar 2).
func minusMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
