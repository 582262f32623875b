package bedfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/zoomtree"
)

var (
	// ErrBadRecord signals a malformed BED line.
	ErrBadRecord = errors.New("bedfile: malformed record")
	// ErrNotRegularFile signals a path not denoting a regular file.
	ErrNotRegularFile = errors.New("bedfile: not a regular file")
)

// Load reads a whole BED file and returns its intervals grouped by
// chromosome, each group sorted by start position as zoomtree insertion
// requires. BED4 name columns become the interval payload.
func Load(name string) (map[string][]zoomtree.Interval, error) {
	file, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Read parses BED records from r; see Load.
func Read(r io.Reader) (map[string][]zoomtree.Interval, error) {
	byChr := make(map[string][]zoomtree.Interval)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		iv, ok, err := parseLine(scanner.Text(), lineno)
		if err != nil {
			return nil, err
		}
		if ok {
			byChr[iv.Chr] = append(byChr[iv.Chr], iv)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, ivs := range byChr {
		sortEntries(ivs)
	}
	return byChr, nil
}

func openFile(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}
	return os.Open(name)
}

// parseLine parses one BED line. ok is false for comments, track headers
// and blank lines.
func parseLine(line string, lineno int) (iv zoomtree.Interval, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
		return zoomtree.Interval{}, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return zoomtree.Interval{}, false, fmt.Errorf("line %d: %w", lineno, ErrBadRecord)
	}
	start, err1 := strconv.ParseInt(fields[1], 10, 64)
	end, err2 := strconv.ParseInt(fields[2], 10, 64)
	if err1 != nil || err2 != nil || start < 0 || end <= start {
		return zoomtree.Interval{}, false, fmt.Errorf("line %d: %w", lineno, ErrBadRecord)
	}
	iv = zoomtree.Interval{
		Range: zoomtree.Range{Chr: fields[0], Start: start, End: end},
	}
	if len(fields) >= 4 {
		iv.Data = fields[3]
	}
	return iv, true, nil
}

func sortEntries(ivs []zoomtree.Interval) {
	sort.SliceStable(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}
