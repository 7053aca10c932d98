package op

// Stats is a snapshot of the counters an operation accumulates. A StatsMsg
// always carries a full replacement snapshot, never a delta, and within one
// operation's lifetime no counter ever decreases.
type Stats struct {
	Deleted    int
	Failed     int
	BytesFreed int64
}
