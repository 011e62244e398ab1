package save

import (
	"errors"
	"os"
)

// ErrNoFilename is returned when a save is requested before any filename
// has been chosen.
var ErrNoFilename = errors.New("no filename set")

// Disk persists exported bytes to the local filesystem. It satisfies
// grid.Saver.
type Disk struct{}

func (Disk) Save(filename string, data []byte) error {
	if filename == "" {
		return ErrNoFilename
	}
	return os.WriteFile(filename, data, 0644)
}
