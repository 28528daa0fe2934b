package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	commands            map[string]int
	resultsRecorded     int
	undos               int
	parseFailures       int
	notifSent           int
	notifFailed         int
	tournamentsFinished int
	finishDurations     []float64
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commands: make(map[string]int),
	}
}

func (m *Mock) IncCommand(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[name]++
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncUndos() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undos++
}

func (m *Mock) IncParseFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseFailures++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncTournamentsFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFinished++
}

func (m *Mock) ObserveFinishDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishDurations = append(m.finishDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Commands returns how many times IncCommand was called with name.
func (m *Mock) Commands(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[name]
}

func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

func (m *Mock) Undos() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undos
}

func (m *Mock) ParseFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parseFailures
}

func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

func (m *Mock) TournamentsFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFinished
}

// FinishDurations returns every observed finish duration.
func (m *Mock) FinishDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.finishDurations...)
}

// StoreMock is an in-memory MetricsStore.
type StoreMock struct {
	mu     sync.Mutex
	values map[string]int
}

func NewStoreMock() *StoreMock {
	return &StoreMock{values: make(map[string]int)}
}

func (m *StoreMock) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *StoreMock) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
