// Package index persists identifier validity verdicts as CSV, one row
// per prefixed identifier. A loaded index pre-seeds a manager cache, so
// repeated runs skip registry lookups for identifiers already settled.
package index

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/miku/pidkit/atomicfile"
	"github.com/miku/pidkit/id"
	"github.com/segmentio/encoding/json"
)

// Load reads a validity index from path. A missing file yields an empty
// cache, not an error, so first runs need no setup.
func Load(path string) (id.Cache, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return id.Cache{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses index rows: identifier, valid, optional extra JSON.
func Read(r io.Reader) (id.Cache, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cache := id.Cache{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return cache, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("index: short row: %v", row)
		}
		valid, err := strconv.ParseBool(row[1])
		if err != nil {
			return nil, fmt.Errorf("index: bad validity for %s: %w", row[0], err)
		}
		info := id.Info{Valid: valid}
		if len(row) > 2 && row[2] != "" {
			if err := json.Unmarshal([]byte(row[2]), &info.Extra); err != nil {
				return nil, fmt.Errorf("index: bad extra for %s: %w", row[0], err)
			}
		}
		cache[row[0]] = info
	}
}

// Save writes the cache to path atomically, rows sorted by identifier
// for stable diffs.
func Save(path string, cache id.Cache) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	if err := Write(f, cache); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}

// LoadColumnSet reads one column of a CSV file into a membership set,
// e.g. a set of already processed DOIs.
func LoadColumnSet(path string, column int) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	set := make(map[string]bool)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		if column < len(row) {
			set[row[column]] = true
		}
	}
}

// CSVIndex is a two column key/value lookup loaded into memory, e.g. a
// pre-resolved agent to ORCID mapping.
type CSVIndex struct {
	rows map[string]string
}

// OpenCSVIndex loads a two column CSV file; the first column is the key.
func OpenCSVIndex(path string) (*CSVIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows := make(map[string]string)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) >= 2 {
			rows[row[0]] = row[1]
		}
	}
	return &CSVIndex{rows: rows}, nil
}

// Get returns the value for a key and whether it was present.
func (ix *CSVIndex) Get(key string) (string, bool) {
	v, ok := ix.rows[key]
	return v, ok
}

// Write serializes the cache as CSV rows.
func Write(w io.Writer, cache id.Cache) error {
	keys := make([]string, 0, len(cache))
	for k := range cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cw := csv.NewWriter(w)
	for _, k := range keys {
		info := cache[k]
		row := []string{k, strconv.FormatBool(info.Valid)}
		if len(info.Extra) > 0 {
			b, err := json.Marshal(info.Extra)
			if err != nil {
				return err
			}
			row = append(row, string(b))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
