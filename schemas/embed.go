// Package schemas carries the declarative JSON Schema definitions shared by
// every read and write path that touches persisted records. Embedding the
// schema files keeps client and server on one contract if they are ever
// split.
package schemas

import _ "embed"

//go:embed candidate.schema.json
var Candidate []byte

//go:embed client.schema.json
var Client []byte

//go:embed history_item.schema.json
var HistoryItem []byte
