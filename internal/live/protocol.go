package live

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	Track    string          `json:"track,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// ExportCompletePayload tells a runtime to reload a track's data.
type ExportCompletePayload struct {
	ExportID string `json:"exportId"`
	Track    string `json:"track"`
	DataURL  string `json:"dataUrl"`
	GLB      string `json:"glb"`
	Tracks   int    `json:"tracks"`
	Hotspots int    `json:"hotspots"`
	Skipped  int    `json:"skipped"`
}

// WelcomePayload is sent to a client right after it subscribes.
type WelcomePayload struct {
	ClientID    string `json:"clientId"`
	Subscribers int    `json:"subscribers"`
}

const (
	TypeWelcome        = "welcome"
	TypeExportComplete = "export.complete"
	TypePing           = "ping"
	TypePong           = "pong"
	TypeError          = "error"
)
