package domain

import "time"

// SnapshotVersion is the schema version written with every snapshot.
const SnapshotVersion = "1.0"

// SnapshotTimeLayout renders snapshot timestamps as ISO-8601 in UTC with
// millisecond precision.
const SnapshotTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is the record stored in the autosave slot.
type Snapshot struct {
	Data      Draft  `json:"data"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Recovery is a snapshot read back from the slot, with its age verdict.
type Recovery struct {
	Data      Draft     `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	IsRecent  bool      `json:"isRecent"`
}
