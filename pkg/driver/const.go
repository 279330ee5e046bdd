package driver

// DeviceType represents human readable device type. DeviceType
// can be useful to filter the drivers too.
type DeviceType string

const (
	// DepthCamera represents devices producing depth frames
	DepthCamera DeviceType = "depth-camera"
	// CmdSource represents an external command writing frames to stdout
	CmdSource DeviceType = "cmdsource"
)

// Priority represents how strongly a driver should be preferred when several
// match a query.
type Priority float32

const (
	PriorityHigh   Priority = 0.1
	PriorityNormal Priority = 0.0
	PriorityLow    Priority = -0.1
)
