package output

import (
	"bytes"
	"encoding/json"
	"github.com/hscells/interleaving"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"strconv"
)

// DumpStore keeps the ranking distributions of methods on disk, keyed by the hash of the lists they interleave.
type DumpStore struct {
	d *diskv.Diskv
}

// DumpEntry is a sampled ranking and its probability, as written by Method.DumpRankings.
type DumpEntry struct {
	Probability float64                `json:"probability"`
	Ranking     map[string]interface{} `json:"ranking"`
}

// blockTransform splits a key into directories of blockSize characters.
func blockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// NewDumpStore opens a store rooted at path.
func NewDumpStore(path string) *DumpStore {
	return &DumpStore{
		d: diskv.New(diskv.Options{
			BasePath:     path,
			Transform:    blockTransform(8),
			CacheSizeMax: 4096 * 1024,
		}),
	}
}

// ListsKey is the key the distribution of a method over the lists is stored under.
func ListsKey(lists [][]string) string {
	r := interleaving.Ranking{Lists: lists}
	return strconv.FormatUint(r.Hash(), 10)
}

// Put stores the ranking distribution of the method.
func (s *DumpStore) Put(m interleaving.Method) (string, error) {
	var buff bytes.Buffer
	if err := m.DumpRankings(&buff); err != nil {
		return "", err
	}
	key := ListsKey(m.Lists())
	return key, errors.Wrapf(s.d.Write(key, buff.Bytes()), "writing %s", key)
}

// Has reports whether a distribution is stored for the lists.
func (s *DumpStore) Has(lists [][]string) bool {
	return s.d.Has(ListsKey(lists))
}

// Get reads the distribution stored under key.
func (s *DumpStore) Get(key string) (map[string]DumpEntry, error) {
	b, err := s.d.Read(key)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", key)
	}
	var entries map[string]DumpEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", key)
	}
	return entries, nil
}

// Keys lists the stored keys.
func (s *DumpStore) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

// Erase removes the distribution stored under key.
func (s *DumpStore) Erase(key string) error {
	return s.d.Erase(key)
}
