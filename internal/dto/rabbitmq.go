package dto

type MQImageCleanupMsg struct {
	Path string `json:"path"`
}
