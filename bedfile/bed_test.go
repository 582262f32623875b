package bedfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const sampleBED = `track name=genes description="test track"
# a comment
chr1	500	600	geneA
chr1	150	450	geneB
chr2	0	100
chr1	500	800	geneC

chr2	50	70	x
`

func writeTempBED(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.bed")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write test file: %v", err)
	}
	return name
}

func TestReadGroupsAndSorts(t *testing.T) {
	byChr, err := Read(strings.NewReader(sampleBED))
	if err != nil {
		t.Fatalf("unexpected Read error: %v", err)
	}
	if len(byChr) != 2 {
		t.Fatalf("expected 2 chromosomes, got %d", len(byChr))
	}
	chr1 := byChr["chr1"]
	if len(chr1) != 3 {
		t.Fatalf("expected 3 chr1 entries, got %v", chr1)
	}
	// sorted by start, then end
	if chr1[0].Start != 150 || chr1[1].End != 600 || chr1[2].End != 800 {
		t.Errorf("chr1 entries out of order: %v", chr1)
	}
	if chr1[0].Data != "geneB" {
		t.Errorf("BED4 name not carried as payload: %v", chr1[0].Data)
	}
	if byChr["chr2"][0].Data != nil {
		t.Errorf("BED3 record must have a nil payload: %v", byChr["chr2"][0])
	}
}

func TestReadRejectsMalformedRecords(t *testing.T) {
	bad := []string{
		"chr1\t100",              // too few fields
		"chr1\tabc\t200",         // non-numeric start
		"chr1\t300\t200",         // end before start
		"chr1\t-5\t200",          // negative coordinate
	}
	for _, line := range bad {
		if _, err := Read(strings.NewReader(line + "\n")); !errors.Is(err, ErrBadRecord) {
			t.Errorf("%q: expected ErrBadRecord, got %v", line, err)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	name := writeTempBED(t, sampleBED)
	byChr, err := Load(name)
	if err != nil {
		t.Fatalf("unexpected Load error: %v", err)
	}
	if len(byChr["chr1"]) != 3 || len(byChr["chr2"]) != 2 {
		t.Errorf("unexpected load result: %v", byChr)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.bed")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadAsyncBroadcastsBatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	name := writeTempBED(t, sampleBED)
	loader, err := LoadAsync(name, 2)
	if err != nil {
		t.Fatalf("unexpected LoadAsync error: %v", err)
	}
	ch, ok := loader.Subscribe()
	if !ok {
		t.Fatal("subscription failed")
	}
	loader.Start()
	total := 0
	for msg := range ch {
		batch := msg.(Batch)
		if len(batch.Entries) == 0 || len(batch.Entries) > 2 {
			t.Errorf("unexpected batch size: %v", batch)
		}
		for _, e := range batch.Entries {
			if e.Chr != batch.Chr {
				t.Errorf("entry %v in batch for %s", e, batch.Chr)
			}
		}
		ext := batch.Extent()
		if ext.IsEmpty() {
			t.Errorf("batch extent empty: %v", batch)
		}
		total += len(batch.Entries)
	}
	if err := loader.Err(); err != nil {
		t.Fatalf("unexpected loader error: %v", err)
	}
	if total != 5 {
		t.Errorf("received %d entries in total, want 5", total)
	}
}
