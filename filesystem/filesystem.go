// Package filesystem is the one place tonneli touches the disk through.
//
// Config, logs, remembered queries and installed Lua providers all go through API,
// so tests run the whole program against memory instead.
package filesystem

import "github.com/spf13/afero"

var backend = osBackend()

func osBackend() afero.Afero {
	return afero.Afero{Fs: afero.NewOsFs()}
}

// API returns the filesystem in use.
func API() afero.Afero {
	return backend
}

// SetOsFs switches back to the real disk.
func SetOsFs() {
	backend = osBackend()
}

// SetMemMapFs switches to a fresh in-memory filesystem.
// Whatever an earlier in-memory backend held is gone.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
