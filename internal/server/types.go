package server

import "remixd/internal/engine"

type healthResponse struct {
	Status       string             `json:"status"`
	Message      string             `json:"message"`
	Version      string             `json:"version"`
	Endpoints    map[string]string  `json:"endpoints"`
	Dependencies []engine.DepStatus `json:"dependencies,omitempty"`
}

type presetItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type presetListResponse struct {
	Presets []presetItem `json:"presets"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
