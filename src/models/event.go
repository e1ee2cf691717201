package models

// -----------------------------------------------------------------------------
// Push events for websocket subscribers.
// -----------------------------------------------------------------------------

// MReloadEvent announces that a dataset finished (re)loading.
// Type is "INITIAL" on the first load and "RELOAD" afterwards.
type MReloadEvent struct {
	Type      string `json:"type"`
	Dataset   string `json:"dataset"` // "settlement" or "accumulated"
	Days      int    `json:"days"`
	Codes     int    `json:"codes"`
	Timestamp int64  `json:"timestamp"`
}
