package storage

import "encoding/json"

// CurrentVersion is written into every envelope this build produces.
const CurrentVersion = "1.0.0"

// LegacyVersion marks values stored as bare JSON without an envelope. They
// are handed to the Migrator like any other foreign version.
const LegacyVersion = ""

// Envelope is the stored shape of every value: the payload plus the write
// time in epoch milliseconds and the format version that produced it.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	Version   string          `json:"version"`
}
