package inmemory

import "sync"

type Snapshot struct {
	TxTotal    uint64            `json:"tx_total"`
	TxAccepted uint64            `json:"tx_accepted"`
	TxReverted uint64            `json:"tx_reverted"`
	ByOp       map[string]OpStat `json:"by_op"`
}

type OpStat struct {
	Accepted uint64 `json:"accepted"`
	Reverted uint64 `json:"reverted"`
}

// Recorder counts committed and reverted transactions per contract
// operation, served at /ops/kpi.
type Recorder struct {
	mu       sync.Mutex
	accepted uint64
	reverted uint64
	byOp     map[string]OpStat
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOp: map[string]OpStat{},
	}
}

func (r *Recorder) RecordAccepted(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	stat := r.byOp[op]
	stat.Accepted++
	r.byOp[op] = stat
}

func (r *Recorder) RecordReverted(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reverted++
	stat := r.byOp[op]
	stat.Reverted++
	r.byOp[op] = stat
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TxAccepted: r.accepted,
		TxReverted: r.reverted,
		TxTotal:    r.accepted + r.reverted,
		ByOp:       make(map[string]OpStat, len(r.byOp)),
	}
	for k, v := range r.byOp {
		out.ByOp[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
