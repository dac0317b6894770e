package clock

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type fakeTimer struct {
	calls   []uint64
	results map[uint64]*uint64
}

func u64p(v uint64) *uint64 { return &v }

func (f *fakeTimer) Sync(cycle uint64) *uint64 {
	f.calls = append(f.calls, cycle)
	return f.results[cycle]
}

func TestTimerDeviceListSchedule(t *testing.T) {
	l := NewTimerDeviceList()
	t1 := &fakeTimer{results: map[uint64]*uint64{4: u64p(12)}}
	t2 := &fakeTimer{}
	id1 := l.Add(t1)
	id2 := l.Add(t2)

	l.SetTrigger(id1, u64p(4))
	l.SetTrigger(id2, u64p(8))

	if !l.NeedsSync(4) {
		t.Fatalf("NeedsSync(4) = false, want true\n%s", spew.Sdump(l))
	}
	for _, c := range []uint64{5, 6, 7} {
		if l.NeedsSync(c) {
			t.Errorf("NeedsSync(%d) = true, want false", c)
		}
	}

	l.Sync(4)
	if len(t1.calls) != 1 || len(t2.calls) != 0 {
		t.Fatalf("Sync(4) called t1=%v t2=%v, want only t1 called once", t1.calls, t2.calls)
	}

	if got := *l.nextSync; got != 8 {
		t.Errorf("nextSync = %d, want 8", got)
	}

	for c := uint64(5); c < 12; c++ {
		l.Sync(c)
	}
	if len(t1.calls) != 1 {
		t.Errorf("t1 synced again before cycle 12: calls=%v", t1.calls)
	}
}

func TestClockOneMHzSync(t *testing.T) {
	c := New(nil)
	for i := 0; i < 5; i++ {
		c.Inc()
	}
	if c.Cycles() != 5 {
		t.Fatalf("Cycles() = %d, want 5", c.Cycles())
	}
	c.OneMHzSync()
	if c.Cycles() != 6 {
		t.Errorf("OneMHzSync() from odd cycle = %d, want 6", c.Cycles())
	}
	c.OneMHzSync()
	if c.Cycles() != 6 {
		t.Errorf("OneMHzSync() from even cycle = %d, want unchanged 6", c.Cycles())
	}
}
