package worker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const statusFileName = "worker.status"

// Status describes a running worker pool, written to the data directory
// on start and removed on shutdown so `status` can report on it.
type Status struct {
	Count     int       `json:"count"`
	Pid       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

func statusPath(dataDir string) string {
	return filepath.Join(dataDir, statusFileName)
}

func WriteStatus(dataDir string, count int) error {
	status := Status{
		Count:     count,
		Pid:       os.Getpid(),
		StartedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statusPath(dataDir), data, 0644)
}

// ReadStatus returns nil with no error when no worker pool is running.
func ReadStatus(dataDir string) (*Status, error) {
	data, err := os.ReadFile(statusPath(dataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func ClearStatus(dataDir string) error {
	err := os.Remove(statusPath(dataDir))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
