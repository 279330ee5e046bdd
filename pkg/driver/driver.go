package driver

import (
	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

// OpenCloser is an interface with Open and Close methods
type OpenCloser interface {
	Open() error
	Close() error
}

// Adapter is an interface for a depth source. Properties is only valid once
// the adapter has been opened.
type Adapter interface {
	OpenCloser
	Properties() []prop.Media
}

// VideoRecorder is an interface to encapsulate recording of depth frames
type VideoRecorder interface {
	VideoRecord(p prop.Media) (r video.Reader, err error)
}

// Info is a generic information of a driver
type Info struct {
	Label      string
	DeviceType DeviceType
	Priority   Priority
}

// Driver represents an adapter that has been registered to the manager, with
// a generated ID and a tracked State
type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}
