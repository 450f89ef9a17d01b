package search

import (
	"container/heap"

	"nonosolve/internal/core"
)

// job is one (direction, line-index) pair queued for re-solving.
type job struct {
	dir      core.Direction
	index    int
	priority int
	seq      int // insertion order, for tie-breaking
}

// jobHeap is a max-heap on priority, ties broken by earliest insertion.
type jobHeap []*job

func (h jobHeap) Len() int { return len(h) }
func (h jobHeap) Less(a, b int) bool {
	if h[a].priority != h[b].priority {
		return h[a].priority > h[b].priority
	}
	return h[a].seq < h[b].seq
}
func (h jobHeap) Swap(a, b int) { h[a], h[b] = h[b], h[a] }
func (h *jobHeap) Push(x any)    { *h = append(*h, x.(*job)) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	j := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return j
}

// JobQueue is the priority work list of lines that need re-solving (C3).
// Duplicates are suppressed via each clue's JobIndex field: a line already
// queued is never added twice.
type JobQueue struct {
	heap jobHeap
	seq  int
}

// NewJobQueue returns an empty queue.
func NewJobQueue() *JobQueue {
	return &JobQueue{}
}

// Flush empties the queue and marks every line not-queued.
func (q *JobQueue) Flush(puz *core.Puzzle) {
	for _, j := range q.heap {
		puz.Clue[j.dir][j.index].JobIndex = -1
	}
	q.heap = nil
	heap.Init(&q.heap)
}

// Init enqueues every line of the puzzle. Used to start a fresh solve.
func (q *JobQueue) Init(puz *core.Puzzle) {
	for dir := 0; dir < puz.NSet; dir++ {
		for i := range puz.Clue[dir] {
			q.Add(puz, core.Direction(dir), i)
		}
	}
}

// priority makes lower-slack lines come off the queue first; at equal
// slack, lines with fewer clues (fewer possible placements) go first.
func priority(lc *core.LineClue) int {
	return -lc.Slack*4 - lc.NClues()
}

// Add enqueues line (dir, i), unless it is already queued.
func (q *JobQueue) Add(puz *core.Puzzle, dir core.Direction, i int) {
	lc := &puz.Clue[dir][i]
	if lc.JobIndex != -1 {
		return
	}
	q.seq++
	j := &job{dir: dir, index: i, priority: priority(lc), seq: q.seq}
	lc.JobIndex = q.seq
	heap.Push(&q.heap, j)
}

// AddCell enqueues every line that passes through cell.
func (q *JobQueue) AddCell(puz *core.Puzzle, cell *core.Cell) {
	for dir := 0; dir < puz.NSet; dir++ {
		q.Add(puz, core.Direction(dir), cell.Coord[dir])
	}
}

// Next pops the highest-priority job. Returns ok=false if the queue is
// empty.
func (q *JobQueue) Next(puz *core.Puzzle) (dir core.Direction, i int, ok bool) {
	if len(q.heap) == 0 {
		return 0, 0, false
	}
	j := heap.Pop(&q.heap).(*job)
	puz.Clue[j.dir][j.index].JobIndex = -1
	return j.dir, j.index, true
}

// Len reports the number of queued jobs.
func (q *JobQueue) Len() int {
	return len(q.heap)
}
