package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/cubesync"
)

// Repeat is a move sequence that occurs more than once.
type Repeat struct {
	Moves  []cubesync.Move
	Count  int
	Starts []int // start index of each occurrence, capped at maxStarts
}

const maxStarts = 10

// rollingHash is a Rabin-Karp hash over a fixed-size window of move tokens.
type rollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

func newRollingHash(n int) *rollingHash {
	rh := &rollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
	}
	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// roll appends token, dropping the oldest one once the window is full.
func (rh *rollingHash) roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

func (rh *rollingHash) ready() bool {
	return len(rh.window) == rh.n
}

type repeatEntry struct {
	tokens []uint8
	count  int
	starts []int
}

// MineRepeats returns up to topK of the most frequent sequences for each
// length in [minN, maxN], longest first. Occurrences may overlap.
func MineRepeats(moves []cubesync.Move, minN, maxN, topK int) []Repeat {
	if minN < 1 || len(moves) < minN {
		return nil
	}

	// Tokens start at 1 so a leading U does not vanish from the hash.
	tokens := make([]uint8, len(moves))
	for i, m := range moves {
		tokens[i] = uint8(m.Index() + 1)
	}

	var out []Repeat
	for n := min(maxN, len(moves)); n >= minN; n-- {
		out = append(out, mineLength(tokens, n, topK)...)
	}
	return out
}

func mineLength(tokens []uint8, n, topK int) []Repeat {
	// Collisions are chained per hash and told apart by content.
	counts := make(map[uint64][]*repeatEntry)
	rh := newRollingHash(n)

	for i, t := range tokens {
		rh.roll(t)
		if !rh.ready() {
			continue
		}
		start := i - n + 1

		var entry *repeatEntry
		for _, e := range counts[rh.hash] {
			if slices.Equal(e.tokens, rh.window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &repeatEntry{tokens: slices.Clone(rh.window)}
			counts[rh.hash] = append(counts[rh.hash], entry)
		}
		entry.count++
		if len(entry.starts) < maxStarts {
			entry.starts = append(entry.starts, start)
		}
	}

	var entries []*repeatEntry
	for _, bucket := range counts {
		for _, e := range bucket {
			if e.count >= 2 {
				entries = append(entries, e)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].starts[0] < entries[j].starts[0]
	})
	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]Repeat, len(entries))
	for i, e := range entries {
		seq := make([]cubesync.Move, len(e.tokens))
		for j, t := range e.tokens {
			seq[j], _ = cubesync.MoveFromIndex(int(t) - 1)
		}
		result[i] = Repeat{Moves: seq, Count: e.count, Starts: e.starts}
	}
	return result
}
