package layercache

import (
	"errors"
	"fmt"
)

// ErrLayerLoadFailed is matched by every error passed to a NotifyFunc.
var ErrLayerLoadFailed = errors.New("layer load failed")

// LoadError describes a failed fetch or decode of one layer.
type LoadError struct {
	LayerID int64
	Name    string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: layer %d (%s): %v", ErrLayerLoadFailed, e.LayerID, e.Name, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLayerLoadFailed, e.Err}
}
