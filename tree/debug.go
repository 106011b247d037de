package tree

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
)

// The memory tracker records every live node together with an allocation
// sequence number and the source location that constructed it. It is off
// by default; tests and debug sessions turn it on around the region they
// want to audit.

var tracker struct {
	mu      sync.Mutex
	enabled bool
	seq     uint64
	live    map[Node]allocation
}

type allocation struct {
	seq  uint64
	file string
	line int
}

// SetTracking turns the live-node tracker on or off. Turning it on
// resets the recorded state.
func SetTracking(on bool) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.enabled = on
	tracker.seq = 0
	if on {
		tracker.live = make(map[Node]allocation)
	} else {
		tracker.live = nil
	}
}

func track(n Node) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.enabled {
		return
	}
	tracker.seq++
	_, file, line, _ := runtime.Caller(2)
	tracker.live[n] = allocation{seq: tracker.seq, file: file, line: line}
}

func untrack(n Node) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.enabled {
		delete(tracker.live, n)
	}
}

// LiveCount returns the number of tracked nodes still alive.
func LiveCount() int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return len(tracker.live)
}

// Checkpoint walks the tracked nodes in allocation order and reports to w
// any node whose reference count is not positive, as well as an excess of
// live nodes above the expected threshold. It returns the live count.
func Checkpoint(w io.Writer, expected int) int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	type entry struct {
		node Node
		info allocation
	}
	entries := make([]entry, 0, len(tracker.live))
	for n, a := range tracker.live {
		entries = append(entries, entry{node: n, info: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].info.seq < entries[j].info.seq
	})

	for _, e := range entries {
		if rc := e.node.head().Refcount(); rc <= 0 {
			fmt.Fprintf(w, "node #%d (%s, %s:%d) has refcount %d\n",
				e.info.seq, e.node.TypeName(), e.info.file, e.info.line, rc)
		}
	}
	if len(entries) > expected {
		fmt.Fprintf(w, "%d nodes live, expected at most %d\n", len(entries), expected)
		for _, e := range entries {
			fmt.Fprintf(w, "  #%d %s allocated at %s:%d\n",
				e.info.seq, e.node.TypeName(), e.info.file, e.info.line)
		}
	}
	return len(entries)
}
