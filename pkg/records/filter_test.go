package records

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func stamped(seq int, ts time.Time, dev string) Record {
	return Record{Seq: seq, Time: &ts, Device: dev, Metrics: map[string]string{"r_await": "1.0"}}
}

func testRecords() []Record {
	base := time.Date(2025, time.August, 4, 10, 0, 0, 0, time.UTC)
	return []Record{
		stamped(1, base, "nvme0n1"),
		stamped(1, base, "sda"),
		stamped(2, base.Add(10*time.Second), "nvme0n1"),
		stamped(2, base.Add(10*time.Second), "sda"),
		stamped(3, base.Add(20*time.Second), "nvme0n1"),
		stamped(3, base.Add(20*time.Second), "sda"),
	}
}

func TestParseBound(t *testing.T) {
	seq, err := ParseBound("12")
	if err != nil {
		t.Fatal(err)
	}
	if !seq.IsSet() || seq.isTime {
		t.Errorf("ParseBound(12) = %+v, want a sequence bound", seq)
	}

	ts, err := ParseBound("2025-08-04 10:00:05")
	if err != nil {
		t.Fatal(err)
	}
	if !ts.IsSet() || !ts.isTime {
		t.Errorf("ParseBound(timestamp) = %+v, want a timestamp bound", ts)
	}

	unset, err := ParseBound("")
	if err != nil {
		t.Fatal(err)
	}
	if unset.IsSet() {
		t.Error("ParseBound(\"\") should be unset")
	}

	if _, err := ParseBound("yesterday"); err == nil {
		t.Error("ParseBound(\"yesterday\") should fail")
	}
}

func TestFilterSequenceRange(t *testing.T) {
	start, _ := ParseBound("2")
	end, _ := ParseBound("3")
	kept, err := Filter{Start: start, End: end}.Apply(testRecords())
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 4 {
		t.Fatalf("got %d records, want 4", len(kept))
	}
	for _, r := range kept {
		if r.Seq < 2 || r.Seq > 3 {
			t.Errorf("Seq %d escaped range [2,3]", r.Seq)
		}
	}
}

func TestFilterTimestampRange(t *testing.T) {
	start, err := ParseBound("2025-08-04 10:00:05")
	if err != nil {
		t.Fatal(err)
	}
	end, err := ParseBound("2025-08-04 10:00:15")
	if err != nil {
		t.Fatal(err)
	}
	kept, err := Filter{Start: start, End: end}.Apply(testRecords())
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 2 {
		t.Fatalf("got %d records, want the 10:00:10 pair only", len(kept))
	}
	for _, r := range kept {
		if r.Seq != 2 {
			t.Errorf("Seq = %d, want 2", r.Seq)
		}
	}
}

// A timestamp bound can never be satisfied by records without timestamps.
func TestFilterTimestampBoundDropsUnstamped(t *testing.T) {
	recs := []Record{
		{Seq: 1, Device: "sda"},
		{Seq: 2, Device: "sda"},
	}
	start, _ := ParseBound("2025-08-04 10:00:00")
	kept, err := Filter{Start: start}.Apply(recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 0 {
		t.Errorf("got %d records, want 0", len(kept))
	}
}

func TestFilterDevicePattern(t *testing.T) {
	recs := testRecords()

	kept, err := Filter{Device: "nvme"}.Apply(recs)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 3 {
		t.Fatalf("substring match got %d records, want 3", len(kept))
	}
	for _, r := range kept {
		if r.Device != "nvme0n1" {
			t.Errorf("Device = %q, want nvme0n1", r.Device)
		}
	}

	if _, err := (Filter{Device: "nvme["}).Apply(recs); err == nil {
		t.Error("invalid pattern should fail")
	}
}

func TestFilterIntersection(t *testing.T) {
	start, _ := ParseBound("2")
	kept, err := Filter{Start: start, Device: "sda"}.Apply(testRecords())
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 2 {
		t.Fatalf("got %d records, want 2", len(kept))
	}
	for _, r := range kept {
		if r.Device != "sda" || r.Seq < 2 {
			t.Errorf("record %+v escaped the intersection", r)
		}
	}
}

func TestFilterZeroValueIsIdentity(t *testing.T) {
	recs := testRecords()
	kept, err := Filter{}.Apply(recs)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(recs, kept); diff != "" {
		t.Errorf("zero filter changed the record set (-want +got):\n%s", diff)
	}
}

func TestDevices(t *testing.T) {
	got := Devices(testRecords())
	want := []string{"nvme0n1", "sda"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Devices mismatch (-want +got):\n%s", diff)
	}
}
