package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncCommand(name string)
	IncResultsRecorded()
	IncUndos()
	IncParseFailures()
	IncNotifSent()
	IncNotifFailed()
	IncTournamentsFinished()
	ObserveFinishDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore keeps durable usage counters in the archive database.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
