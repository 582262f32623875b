package bedfile

import (
	"bufio"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/zoomtree"
)

// Batch is one unit of asynchronously loaded BED data: a run of entries on
// a single chromosome, sorted by start position. Batches are published in
// file order.
type Batch struct {
	Chr     string
	Entries []zoomtree.Interval
}

// Extent returns the coordinate range spanned by the batch, suitable as
// the target range of a zoomtree insertion covering exactly this batch.
func (b Batch) Extent() zoomtree.Range {
	if len(b.Entries) == 0 {
		return zoomtree.Range{Chr: b.Chr}
	}
	r := zoomtree.Range{Chr: b.Chr, Start: b.Entries[0].Start, End: b.Entries[0].End}
	for _, e := range b.Entries[1:] {
		if e.End > r.End {
			r.End = e.End
		}
	}
	return r
}

// Loader streams the batches of an asynchronously loading BED file to any
// number of subscribers. Subscriptions must be obtained before Start, the
// broadcaster drops batches nobody listens to.
type Loader struct {
	cast      *caster.Caster
	file      *os.File
	batchSize int
	once      sync.Once
	lastError error
}

// LoadAsync opens a BED file for loading in the background, broadcasting
// a Batch whenever batchSize records accumulated or the chromosome changes
// (batchSize ≤ 0 uses a default). Opening is done synchronously; loading
// begins with Start.
func LoadAsync(name string, batchSize int) (*Loader, error) {
	file, err := openFile(name)
	if err != nil {
		return nil, err
	}
	if batchSize <= 0 {
		batchSize = 1024
	}
	return &Loader{cast: caster.New(nil), file: file, batchSize: batchSize}, nil
}

// Subscribe returns a channel of Batch values. The channel is closed when
// the file is fully loaded or loading failed; check Err afterwards.
func (l *Loader) Subscribe() (<-chan interface{}, bool) {
	return l.cast.Sub(nil, 1)
}

// Start launches the background loading goroutine, once.
func (l *Loader) Start() {
	l.once.Do(func() {
		go l.run(l.file, l.batchSize)
	})
}

// Err returns the error that stopped loading, if any. Valid once the
// subscription channel is closed.
func (l *Loader) Err() error {
	return l.lastError
}

func (l *Loader) run(file *os.File, batchSize int) {
	defer l.cast.Close()
	defer file.Close()
	var batch Batch
	flush := func() {
		if len(batch.Entries) > 0 {
			sortEntries(batch.Entries)
			l.cast.Pub(batch)
			batch = Batch{}
		}
	}
	scanner := bufio.NewScanner(file)
	lineno := 0
	for scanner.Scan() {
		lineno++
		iv, ok, err := parseLine(scanner.Text(), lineno)
		if err != nil {
			l.lastError = err
			tracer().Errorf("bedfile: %s: %v", file.Name(), err)
			return
		}
		if !ok {
			continue
		}
		if iv.Chr != batch.Chr || len(batch.Entries) >= batchSize {
			flush()
			batch.Chr = iv.Chr
		}
		batch.Entries = append(batch.Entries, iv)
	}
	if err := scanner.Err(); err != nil {
		l.lastError = err
		tracer().Errorf("bedfile: %s: %v", file.Name(), err)
		return
	}
	flush()
}
