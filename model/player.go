package model

// PlayerState is the last known state of the playback remote.
type PlayerState struct {
	TrackID    string `json:"trackId"`
	Title      string `json:"title,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Paused     bool   `json:"paused"`
	PositionMs int64  `json:"positionMs"`
	DurationMs int64  `json:"durationMs"`
}

// ConnectionState is the lifecycle state of the playback session.
type ConnectionState string

const (
	ConnDisconnected ConnectionState = "disconnected"
	ConnConnecting   ConnectionState = "connecting"
	ConnConnected    ConnectionState = "connected"
	ConnFailed       ConnectionState = "failed"
)
