package etl

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		value string
		want  Date
		ok    bool
	}{
		{"2024-01-05", Date{2024, time.January, 5}, true},
		{"2024/01/05", Date{2024, time.January, 5}, true},
		{"01/05/2024", Date{2024, time.January, 5}, true},
		{"2024-1-5", Date{2024, time.January, 5}, true},
		{"2024/1/5", Date{2024, time.January, 5}, true},
		{"1/5/2024", Date{2024, time.January, 5}, true},
		{"12/31/2023", Date{2023, time.December, 31}, true},
		{"2024-01-05 00:00:01", Date{2024, time.January, 5}, true},
		{"2024-01-05 10:00", Date{2024, time.January, 5}, true},
		{"2024-01-05T10:00:00", Date{2024, time.January, 5}, true},
		{"2024-01-05T23:59:59.123456", Date{2024, time.January, 5}, true},
		{"2024-01-05T10:00:00Z", Date{2024, time.January, 5}, true},
		{"2024-01-05T23:00:00+14:00", Date{2024, time.January, 5}, true},
		{"2024-01-05T01:00:00-10:00", Date{2024, time.January, 5}, true},
		{"", Date{}, false},
		{"2024-02-30", Date{}, false},
		{"Jan 5 2024", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseDate(tt.value, DefaultDateLayouts)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	dates := []Date{
		{2023, time.December, 31},
		{2024, time.January, 1},
		{2024, time.January, 2},
		{2024, time.February, 1},
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("Expected %s before %s", dates[i-1], dates[i])
		}
		if dates[i].Before(dates[i-1]) {
			t.Errorf("Did not expect %s before %s", dates[i], dates[i-1])
		}
	}
	if dates[0].Before(dates[0]) {
		t.Error("A date is not before itself")
	}
}

func TestDateTimeAndString(t *testing.T) {
	d := Date{2024, time.March, 7}
	if d.String() != "2024-03-07" {
		t.Errorf("Expected 2024-03-07, got %s", d.String())
	}
	want := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	if !d.Time().Equal(want) {
		t.Errorf("Expected %v, got %v", want, d.Time())
	}
	if DateOf(d.Time()) != d {
		t.Error("DateOf(Time()) did not round trip")
	}
}
