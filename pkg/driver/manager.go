package driver

import (
	"fmt"
	"sort"
	"sync"
)

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterVideoRecorder returns a filter function to get depth recorders
func FilterVideoRecorder() FilterFn {
	return func(d Driver) bool {
		_, ok := d.(VideoRecorder)
		return ok
	}
}

// FilterDeviceType returns a filter function to match a device type
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterLabel returns a filter function to match a driver label
func FilterLabel(label string) FilterFn {
	return func(d Driver) bool {
		return d.Info().Label == label
	}
}

// FilterID returns a filter function to find a driver by its ID
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterNot returns a filter function to negate a filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

var manager = &Manager{
	drivers: make(map[string]Driver),
}

// GetManager gets manager singleton instance
func GetManager() *Manager {
	return manager
}

// Register wraps a to be a Driver and registers it to the manager
func (m *Manager) Register(a Adapter, info Info) error {
	d := wrapAdapter(a, info)
	if d == nil {
		return fmt.Errorf("adapter has to be a VideoRecorder")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[d.ID()] = d
	return nil
}

// Query queries by using f to filter drivers, and simply return the filtered results.
// Results are ordered by priority, highest first, then by label.
func (m *Manager) Query(f FilterFn) []Driver {
	m.mu.RLock()
	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if ok := f(d); ok {
			results = append(results, d)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Info(), results[j].Info()
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return results[i].ID() < results[j].ID()
	})
	return results
}
