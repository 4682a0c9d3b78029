package trie

import "strings"

/*
Arena-based path Trie

Paths are stored as sequences of segments ("root", "vendor", "lib"). All nodes
live in one contiguous slice and refer to their children by index rather than
by pointer, so a trie holding many exclusion paths is a single allocation that
grows by appending.

A node marked as an end terminates an inserted path. Looking up a path walks
its segments from the root; reaching an end node on the way means an inserted
path is a prefix of (or equal to) the looked-up path.
*/

// NodeIndex represents the index of a trie node.
type NodeIndex int

// Arena is a memory pool that stores all trie nodes.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps a path segment to the index of the child node.
	children map[string]NodeIndex
	// isEnd indicates whether an inserted path ends at this node.
	isEnd bool
}

// NewArena creates a new arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 64),
	}
	arena.nodes = append(arena.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert inserts a sequence of path segments into the trie.
func (a *Arena) Insert(sequence []string) {
	current := NodeIndex(0)

	for _, part := range sequence {
		// node pointer must be re-taken after newNode may grow the slice
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[part] = childIdx
		}
		current = childIdx
	}

	a.nodes[current].isEnd = true
}

// HasPrefixOf reports whether some inserted sequence is equal to, or a
// leading part of, the given sequence.
func (a *Arena) HasPrefixOf(sequence []string) bool {
	current := NodeIndex(0)
	if a.nodes[current].isEnd {
		return true
	}

	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			return false
		}
		current = childIdx
		if a.nodes[current].isEnd {
			return true
		}
	}

	return false
}

// Trie stores slash-separated paths by segment.
type Trie struct {
	arena *Arena
	size  int
}

// New returns an initialized Trie.
func New() *Trie {
	return &Trie{
		arena: NewArena(),
	}
}

// Insert inserts a slash-separated path.
func (t *Trie) Insert(path string) {
	t.arena.Insert(Split(path))
	t.size++
}

// Covers reports whether path is one of the inserted paths or lies below one.
func (t *Trie) Covers(path string) bool {
	if t.size == 0 {
		return false
	}
	return t.arena.HasPrefixOf(Split(path))
}

// Split breaks a slash-separated path into its non-empty segments.
// A leading slash is kept as a "/" segment so absolute and relative
// paths never share a prefix.
func Split(path string) []string {
	var segments []string
	if strings.HasPrefix(path, "/") {
		segments = append(segments, "/")
	}
	for _, part := range strings.Split(path, "/") {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
