package atomic

import "sync/atomic"

type Status int32

const (
	Created Status = iota
	Starting
	Running
	StartFailed
	Shutdown
)

func (s Status) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Starting:
		return "STARTING"
	case Running:
		return "RUNNING"
	case StartFailed:
		return "START_FAILED"
	case Shutdown:
		return "SHUTDOWN"
	}
	return "UNKNOWN"
}

// State is a lock-free lifecycle holder. The zero value is Created.
type State struct {
	value int32
}

func (s *State) Load() Status {
	return Status(atomic.LoadInt32(&s.value))
}

func (s *State) Store(status Status) {
	atomic.StoreInt32(&s.value, int32(status))
}

func (s *State) Is(status Status) bool {
	return s.Load() == status
}

// Transfer moves from -> to and reports whether this caller won the change.
func (s *State) Transfer(from, to Status) (transferred bool) {
	if val := atomic.LoadInt32(&s.value); val != int32(from) {
		return false
	}
	return atomic.CompareAndSwapInt32(&s.value, int32(from), int32(to))
}

// Terminate moves to Shutdown from any status and returns the previous one.
func (s *State) Terminate() (previous Status) {
	return Status(atomic.SwapInt32(&s.value, int32(Shutdown)))
}
