package engine

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary remixd relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// DepStatus reports the availability of a requirement.
type DepStatus struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Optional  bool   `json:"optional"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// Requirements returns the engine binaries for the given configuration.
// ffprobe is optional: inspection is best-effort and never fails a request.
func Requirements(binary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: binary, Description: "Audio decoding, filtering, and AAC encoding"},
		{Name: "ffprobe", Command: ffprobeBinary, Description: "Input media inspection", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []DepStatus {
	results := make([]DepStatus, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := DepStatus{
			Name:     req.Name,
			Command:  cmd,
			Optional: req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
