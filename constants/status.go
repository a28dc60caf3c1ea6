package constants

// JobStatus is the canonical per-document status stored in the results store.
type JobStatus string

// Stable values (store these exact strings).
const (
	JobStatusTextOK  JobStatus = "TEXT_OK"  // text acquired but no field matched
	JobStatusParseOK JobStatus = "PARSE_OK" // fields extracted
	JobStatusFailed  JobStatus = "FAILED"   // acquisition failed, document skipped
)
