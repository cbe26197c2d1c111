package ports

// ProgressFunc receives monotonic progress updates as frames are rendered.
// done never decreases and total never changes within a run.
type ProgressFunc func(done, total int)
