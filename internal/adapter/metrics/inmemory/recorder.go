package inmemory

import (
	"sync"

	"wildcraft/internal/domain/survival"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByResultCode   map[string]uint64 `json:"by_result_code"`
	ByRejection    map[string]uint64 `json:"by_rejection"`
	TickTotal      uint64            `json:"tick_total"`
	TickSkipped    uint64            `json:"tick_skipped"`
	Deaths         uint64            `json:"deaths"`
}

// Recorder counts action and tick outcomes for the ops endpoint.
type Recorder struct {
	mu         sync.Mutex
	success    uint64
	rejected   uint64
	conflict   uint64
	failure    uint64
	ticks      uint64
	skipped    uint64
	deaths     uint64
	byResult   map[string]uint64
	byRejected map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult:   map[string]uint64{},
		byRejected: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(resultCode survival.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
	if resultCode == survival.ResultPlayerDied {
		r.deaths++
	}
}

func (r *Recorder) RecordRejected(resultCode survival.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byRejected[string(resultCode)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordTick(resultCode survival.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	if resultCode == survival.ResultPlayerDied {
		r.deaths++
	}
}

func (r *Recorder) RecordTickSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.conflict + r.failure,
		ByResultCode:   make(map[string]uint64, len(r.byResult)),
		ByRejection:    make(map[string]uint64, len(r.byRejected)),
		TickTotal:      r.ticks,
		TickSkipped:    r.skipped,
		Deaths:         r.deaths,
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	for k, v := range r.byRejected {
		out.ByRejection[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
