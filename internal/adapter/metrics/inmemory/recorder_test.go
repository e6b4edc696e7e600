package inmemory

import (
	"sync"
	"testing"
)

func TestRecorder_CountsPerOp(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted("publicMint")
	r.RecordAccepted("publicMint")
	r.RecordAccepted("claimLand")
	r.RecordReverted("publicMint")

	snap := r.Snapshot()
	if snap.TxTotal != 4 || snap.TxAccepted != 3 || snap.TxReverted != 1 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
	if snap.ByOp["publicMint"] != (OpStat{Accepted: 2, Reverted: 1}) {
		t.Fatalf("unexpected publicMint stat: %+v", snap.ByOp["publicMint"])
	}
	if snap.ByOp["claimLand"] != (OpStat{Accepted: 1}) {
		t.Fatalf("unexpected claimLand stat: %+v", snap.ByOp["claimLand"])
	}
}

func TestRecorder_SnapshotIsIsolated(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted("withdraw")

	snap := r.Snapshot()
	snap.ByOp["withdraw"] = OpStat{Accepted: 99}

	if got := r.Snapshot().ByOp["withdraw"]; got != (OpStat{Accepted: 1}) {
		t.Fatalf("snapshot must be a copy, got %+v", got)
	}
}

func TestRecorder_ConcurrentRecords(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RecordAccepted("transferFrom")
			r.RecordReverted("transferFrom")
		}()
	}
	wg.Wait()

	snap := r.Snapshot()
	if snap.TxAccepted != 50 || snap.TxReverted != 50 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
}
