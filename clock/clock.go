// Package clock implements the monotonic cycle counter that every bus
// access advances, plus the timer-device scheduling list that rides on
// top of it.
package clock

// Clock is a monotonic cycle counter. Every bus cycle calls Inc exactly
// once; OneMHzSync additionally stalls a 1-MHz device access onto an even
// cycle boundary before it begins.
type Clock struct {
	cycles uint64
	timers *TimerDeviceList
}

// New returns a Clock at cycle zero, driving timers on every Inc. timers
// may be nil if no timer devices are registered.
func New(timers *TimerDeviceList) *Clock {
	return &Clock{timers: timers}
}

// Cycles returns the current cycle count.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}

// Inc advances the clock by one cycle and syncs the timer list.
func (c *Clock) Inc() {
	c.cycles++
	if c.timers != nil {
		c.timers.Sync(c.cycles)
	}
}

// OneMHzSync advances the clock by one extra cycle if it is currently odd,
// bringing it to an even boundary. 1-MHz devices only ever see even
// cycles.
func (c *Clock) OneMHzSync() {
	if c.cycles&1 == 1 {
		c.Inc()
	}
}

// TimerDevice is a device that wants to be woken at a specific future
// cycle rather than polled on every tick.
type TimerDevice interface {
	// Sync is called when the clock reaches this device's armed trigger
	// cycle. It returns the next cycle at which it wants to be woken
	// again, or nil to disarm.
	Sync(cycle uint64) *uint64
}

// TimerDeviceList holds a set of timer devices and the earliest cycle at
// which any of them is due, so Clock.Inc does not have to poll every
// device on every cycle - only the ones actually due at the current
// cycle are called.
type TimerDeviceList struct {
	devices  []TimerDevice
	triggers []*uint64
	nextSync *uint64
}

// NewTimerDeviceList returns an empty timer list.
func NewTimerDeviceList() *TimerDeviceList {
	return &TimerDeviceList{}
}

// Add registers a timer device, initially disarmed, and returns its
// stable id.
func (l *TimerDeviceList) Add(d TimerDevice) int {
	id := len(l.devices)
	l.devices = append(l.devices, d)
	l.triggers = append(l.triggers, nil)
	return id
}

// SetTrigger arms (or disarms, with trigger nil) the device at id to be
// woken at the given cycle, and recomputes the global next-sync point.
func (l *TimerDeviceList) SetTrigger(id int, trigger *uint64) {
	l.triggers[id] = trigger
	l.recomputeNextSync()
}

// NeedsSync reports whether any armed timer is due exactly at cycle.
func (l *TimerDeviceList) NeedsSync(cycle uint64) bool {
	return l.nextSync != nil && *l.nextSync == cycle
}

// Sync calls Sync on every device whose trigger equals cycle, replacing
// each called device's trigger with its return value, and recomputes the
// next global sync point. It is a no-op when nothing is due.
func (l *TimerDeviceList) Sync(cycle uint64) {
	if !l.NeedsSync(cycle) {
		return
	}
	for id, trigger := range l.triggers {
		if trigger != nil && *trigger == cycle {
			l.triggers[id] = l.devices[id].Sync(cycle)
		}
	}
	l.recomputeNextSync()
}

func (l *TimerDeviceList) recomputeNextSync() {
	var min *uint64
	for _, t := range l.triggers {
		if t == nil {
			continue
		}
		if min == nil || *t < *min {
			v := *t
			min = &v
		}
	}
	l.nextSync = min
}
