package db

import "os"

// IsRunningInDocker checks for the marker file docker creates in every container
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}
