package database

import "flag"

// isTestMode reports whether the process is running under `go test`
func isTestMode() bool {
	return flag.Lookup("test.v") != nil
}
