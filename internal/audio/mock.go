package audio

import "time"

// MockEngine is a scripted test double for Engine. Events queued with
// QueueEvent are delivered in order by PollEvent; state transitions,
// flush toggles and bound URIs are recorded for assertions.
type MockEngine struct {
	events       []Event
	flushing     bool
	duration     time.Duration
	haveDuration bool
	noPreroll    bool

	resetErr  error
	setURIErr error
	stateErr  error

	uris       []string
	caps       []string
	stateCalls []State
	flushCalls []bool
	resetCalls int
}

// NewMockEngine creates an empty mock engine.
func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) Reset() error {
	m.resetCalls++
	if m.resetErr != nil {
		return m.resetErr
	}
	return nil
}

func (m *MockEngine) SetURI(uri string) error {
	m.uris = append(m.uris, uri)
	return m.setURIErr
}

func (m *MockEngine) SetCaps(caps string) {
	m.caps = append(m.caps, caps)
}

func (m *MockEngine) SetState(target State) (StateChange, error) {
	m.stateCalls = append(m.stateCalls, target)
	if m.stateErr != nil {
		return StateChangeSuccess, m.stateErr
	}
	if target == StatePaused && m.noPreroll {
		return StateChangeNoPreroll, nil
	}
	return StateChangeSuccess, nil
}

func (m *MockEngine) PollEvent() (Event, bool) {
	if m.flushing || len(m.events) == 0 {
		return nil, false
	}
	ev := m.events[0]
	m.events = m.events[1:]
	return ev, true
}

func (m *MockEngine) QueryDuration() (time.Duration, bool) {
	return m.duration, m.haveDuration
}

func (m *MockEngine) SetFlushing(flushing bool) {
	m.flushCalls = append(m.flushCalls, flushing)
	m.flushing = flushing
	if flushing {
		m.events = nil
	}
}

// Test helpers

func (m *MockEngine) QueueEvent(ev Event) { m.events = append(m.events, ev) }

func (m *MockEngine) SetDuration(d time.Duration) {
	m.duration = d
	m.haveDuration = true
}

func (m *MockEngine) ClearDuration() {
	m.duration = 0
	m.haveDuration = false
}

func (m *MockEngine) SetNoPreroll(v bool) { m.noPreroll = v }

func (m *MockEngine) SetResetError(err error) { m.resetErr = err }

func (m *MockEngine) SetStateError(err error) { m.stateErr = err }

func (m *MockEngine) URIs() []string { return m.uris }

func (m *MockEngine) Caps() []string { return m.caps }

func (m *MockEngine) StateCalls() []State { return m.stateCalls }

func (m *MockEngine) FlushCalls() []bool { return m.flushCalls }

func (m *MockEngine) ResetCalls() int { return m.resetCalls }

func (m *MockEngine) PendingEvents() int { return len(m.events) }

// Verify MockEngine implements Engine at compile time.
var _ Engine = (*MockEngine)(nil)
