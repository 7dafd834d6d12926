package logger

import (
	"sync"
	"time"
)

// Entry is one collected warn/error record.
type Entry struct {
	Level    string                 `json:"level"`
	Message  string                 `json:"message"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
	Caller   string                 `json:"caller"`
	Count    int                    `json:"count"`
	LastSeen time.Time              `json:"last_seen"`
}

// Collector keeps a bounded ring of recent warn/error log entries so the
// status endpoint can report what went wrong without scraping log files.
// Repeated identical messages are coalesced into one entry with a count.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

// NewCollector creates a collector holding at most max entries.
func NewCollector(max int) *Collector {
	if max <= 0 {
		max = 50
	}
	return &Collector{max: max}
}

func (c *Collector) Add(level, message string, fields map[string]interface{}, caller string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	// Coalesce with the newest entry when it is the same message from the
	// same site. Fetch loops tend to repeat the same failure.
	if n := len(c.entries); n > 0 {
		last := &c.entries[n-1]
		if last.Level == level && last.Message == message && last.Caller == caller {
			last.Count++
			last.LastSeen = now
			last.Fields = fields
			return
		}
	}

	c.entries = append(c.entries, Entry{
		Level:    level,
		Message:  message,
		Fields:   fields,
		Caller:   caller,
		Count:    1,
		LastSeen: now,
	})
	if len(c.entries) > c.max {
		c.entries = c.entries[len(c.entries)-c.max:]
	}
}

// Recent returns collected entries, newest first.
func (c *Collector) Recent() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[len(c.entries)-1-i] = e
	}
	return out
}
