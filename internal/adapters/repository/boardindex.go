package repository

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridironlabs/warroom/internal/domain/model"
	"github.com/gridironlabs/warroom/pkg/metrics"
)

// Treap-backed BoardIndex.
//
// Ordering: need score DESC, then subject ID ASC. The comparator makes
// "less" mean "ranks earlier", so an in-order walk produces the board
// from best to worst and a subtree-size descent answers rank queries in
// O(log n).

// scoreScale is the fixed-point factor for need scores. Board scores
// stay in the low hundreds, so six decimal places never overflow.
const scoreScale = 1_000_000

type scoreFP int64

func toFixedPoint(x float64) scoreFP {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return scoreFP(math.MaxInt64)
	case math.IsInf(x, -1):
		return scoreFP(math.MinInt64)
	}
	return scoreFP(math.Round(x * scoreScale))
}

// node is one treap entry. size is maintained on every rotation so
// rank queries can count how many subjects sit above a given one.
type node struct {
	id    string
	score scoreFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aScore, aID) ranks earlier than (bScore, bID).
func less(aScore scoreFP, aID string, bScore scoreFP, bID string) bool {
	if aScore != bScore {
		return aScore > bScore
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

// priority hashes the entry so the treap shape is deterministic for a
// given board without degenerating on sorted inserts.
func priority(id string, score scoreFP) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(score))
	h.Write(b[:])
	return h.Sum64()
}

func insert(n *node, id string, score scoreFP) *node {
	if n == nil {
		return &node{id: id, score: score, prio: priority(id, score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// rankOf descends the treap counting everything that ranks earlier.
// Zero means the entry is not in the tree.
func rankOf(n *node, id string, score scoreFP) int {
	rank := 1
	for n != nil {
		if score == n.score && id == n.id {
			return rank + nsize(n.left)
		}
		if less(score, id, n.score, n.id) {
			n = n.left
		} else {
			rank += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collectTopN appends up to limit subject IDs in board order.
func collectTopN(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.id)
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// Snapshot is the read-optimized view published after each rebuild.
// HTTP handlers serve top-of-board queries from TopCache without
// touching the lock.
type Snapshot struct {
	TopCache []model.ProspectRanking // board order, at most topCacheSize rows
	Size     int
}

// TreapBoardIndex implements BoardIndex over a treap that is rebuilt
// wholesale on every board generation.
type TreapBoardIndex struct {
	mu           sync.RWMutex
	root         *node
	rows         map[string]model.ProspectRanking
	topCacheSize int

	snapshot atomic.Pointer[Snapshot]
}

// NewBoardIndex constructs an empty board index.
func NewBoardIndex(opts ...Option) *TreapBoardIndex {
	s := &TreapBoardIndex{
		topCacheSize: 500,
		rows:         make(map[string]model.ProspectRanking),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// ReplaceAll swaps in a freshly generated board and publishes a new
// read snapshot. Later duplicates of a subject ID win.
func (s *TreapBoardIndex) ReplaceAll(ctx context.Context, board []model.ProspectRanking) {
	start := time.Now()

	rows := make(map[string]model.ProspectRanking, len(board))
	var root *node
	for _, row := range board {
		if prev, ok := rows[row.SubjectID]; ok {
			root = remove(root, prev.SubjectID, toFixedPoint(prev.NeedScore))
		}
		rows[row.SubjectID] = row
		root = insert(root, row.SubjectID, toFixedPoint(row.NeedScore))
	}

	s.mu.Lock()
	s.root = root
	s.rows = rows
	s.publishSnapshot()
	s.mu.Unlock()

	metrics.RecordBoardRebuild(float64(time.Since(start).Milliseconds()))
	metrics.UpdateBoardSize(len(rows))
}

// Rank answers from the treap so the served rank always matches the
// index ordering.
func (s *TreapBoardIndex) Rank(ctx context.Context, subjectID string) (model.ProspectRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[subjectID]
	if !ok {
		return model.ProspectRanking{}, ErrNotFound
	}
	row.Rank = rankOf(s.root, subjectID, toFixedPoint(row.NeedScore))
	return row, nil
}

// TopN serves from the published snapshot when it covers the request
// and walks the treap otherwise.
func (s *TreapBoardIndex) TopN(ctx context.Context, n int) ([]model.ProspectRanking, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	if snap := s.snapshot.Load(); snap != nil && (n <= len(snap.TopCache) || len(snap.TopCache) == snap.Size) {
		if n > len(snap.TopCache) {
			n = len(snap.TopCache)
		}
		return append([]model.ProspectRanking(nil), snap.TopCache[:n]...), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, n)
	collectTopN(s.root, n, &ids)
	out := make([]model.ProspectRanking, 0, len(ids))
	for i, id := range ids {
		row := s.rows[id]
		row.Rank = i + 1
		out = append(out, row)
	}
	return out, nil
}

func (s *TreapBoardIndex) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// publishSnapshot rebuilds the read view. Caller holds s.mu.
func (s *TreapBoardIndex) publishSnapshot() {
	limit := s.topCacheSize
	if limit > len(s.rows) {
		limit = len(s.rows)
	}
	ids := make([]string, 0, limit)
	collectTopN(s.root, limit, &ids)

	cache := make([]model.ProspectRanking, 0, len(ids))
	for i, id := range ids {
		row := s.rows[id]
		row.Rank = i + 1
		cache = append(cache, row)
	}
	s.snapshot.Store(&Snapshot{TopCache: cache, Size: len(s.rows)})
}

// remove deletes one entry, rotating it down to a leaf first.
func remove(n *node, id string, score scoreFP) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = remove(n.left, id, score)
	} else {
		n.right = remove(n.right, id, score)
	}
	fix(n)
	return n
}
