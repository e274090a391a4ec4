package answers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
)

// DefaultFuzzyThreshold is the minimum normalized similarity for a
// fuzzy cache hit. Tunable via Answerer.FuzzyThreshold.
const DefaultFuzzyThreshold = 0.92

// Entry is one line of the question cache: an answered question of a
// given type, with the timestamp of when it was recorded.
type Entry struct {
	Type     string    `json:"type"`
	Question string    `json:"question"`
	Answer   any       `json:"answer"`
	TS       time.Time `json:"ts"`
}

// AnswerString renders the stored answer as text regardless of how JSON
// decoded it.
func (e Entry) AnswerString() string {
	switch v := e.Answer.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AnswerInt parses the stored answer as an integer, falling back to
// fallback when it is not numeric.
func (e Entry) AnswerInt(fallback int) int {
	switch v := e.Answer.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// AnswerList renders the stored answer as a list of strings.
func (e Entry) AnswerList() []string {
	switch v := e.Answer.(type) {
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return parts
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}

// Cache is the persistent question cache: an append-only JSON-lines
// file mirrored in memory. Readers tolerate duplicate entries; the
// latest entry for a (type, question) pair wins.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	exact   map[string]int // cacheKey -> index of latest entry
}

func cacheKey(qtype, question string) string {
	return qtype + "\x00" + question
}

// OpenCache loads the cache file at path, creating an empty cache when
// the file does not exist yet. Unparsable lines are skipped with a
// warning so one corrupt write cannot poison the whole cache.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{path: path, exact: make(map[string]int)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, &CacheError{Path: path, Message: "failed to open", Cause: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			log.Printf("[answers] Warning: skipping malformed cache line %d in %s: %v", lineNo, path, err)
			continue
		}
		c.entries = append(c.entries, entry)
		c.exact[cacheKey(entry.Type, entry.Question)] = len(c.entries) - 1
	}
	if err := scanner.Err(); err != nil {
		return nil, &CacheError{Path: path, Message: "failed to read", Cause: err}
	}
	return c, nil
}

// Lookup returns the latest entry exactly matching (qtype, question).
func (c *Cache) Lookup(qtype, question string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.exact[cacheKey(qtype, question)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// FuzzyLookup returns the entry of the same type whose question is most
// similar to question, provided the similarity reaches threshold. Ties
// on similarity go to the most recent timestamp.
func (c *Cache) FuzzyLookup(qtype, question string, threshold float64) (Entry, float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		best    Entry
		bestSim float64
		found   bool
	)
	for _, entry := range c.entries {
		if entry.Type != qtype {
			continue
		}
		sim := similarity(question, entry.Question)
		if sim < threshold {
			continue
		}
		if !found || sim > bestSim || (sim == bestSim && entry.TS.After(best.TS)) {
			best, bestSim, found = entry, sim, true
		}
	}
	return best, bestSim, found
}

// similarity is Levenshtein distance normalized to [0, 1], where 1 is
// an exact match.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Append records a new entry in memory and appends it to the cache
// file, flushed per write. A write failure is returned so the caller
// can warn; the in-memory entry is kept either way.
func (c *Cache) Append(qtype, question string, answer any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{Type: qtype, Question: question, Answer: answer, TS: time.Now().UTC()}
	c.entries = append(c.entries, entry)
	c.exact[cacheKey(qtype, question)] = len(c.entries) - 1

	if c.path == "" {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return &CacheError{Path: c.path, Message: "failed to encode entry", Cause: err}
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &CacheError{Path: c.path, Message: "failed to open for append", Cause: err}
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return &CacheError{Path: c.path, Message: "failed to append", Cause: err}
	}
	return nil
}

// Len reports the number of in-memory entries, duplicates included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Compact deduplicates the cache by (type, question), keeping the entry
// with the latest timestamp, and rewrites the file atomically.
func (c *Cache) Compact() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	keep := make([]Entry, 0, len(c.exact))
	seen := make(map[string]bool, len(c.exact))
	for i := len(c.entries) - 1; i >= 0; i-- {
		key := cacheKey(c.entries[i].Type, c.entries[i].Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		keep = append(keep, c.entries[i])
	}
	// Restore chronological order after the reverse scan.
	for i, j := 0, len(keep)-1; i < j; i, j = i+1, j-1 {
		keep[i], keep[j] = keep[j], keep[i]
	}

	c.entries = keep
	c.exact = make(map[string]int, len(keep))
	for i, entry := range keep {
		c.exact[cacheKey(entry.Type, entry.Question)] = i
	}

	if c.path == "" {
		return nil
	}
	tmp := c.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &CacheError{Path: c.path, Message: "failed to create compaction file", Cause: err}
	}
	w := bufio.NewWriter(f)
	for _, entry := range c.entries {
		data, err := json.Marshal(entry)
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return &CacheError{Path: c.path, Message: "failed to encode entry", Cause: err}
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &CacheError{Path: c.path, Message: "failed to write compaction file", Cause: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &CacheError{Path: c.path, Message: "failed to close compaction file", Cause: err}
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return &CacheError{Path: c.path, Message: "failed to replace cache file", Cause: err}
	}
	return nil
}
