package prop

import (
	"fmt"
	"reflect"

	"github.com/pion/depthcolor/pkg/frame"
)

type Media struct {
	DeviceID string
	Video
}

// Merge merges all the field values from o to p, except zero values.
func (p *Media) Merge(o Media) {
	rp := reflect.ValueOf(p).Elem()
	ro := reflect.ValueOf(o)

	// merge b fields to a recursively
	var merge func(a, b reflect.Value)
	merge = func(a, b reflect.Value) {
		numFields := a.NumField()
		for i := 0; i < numFields; i++ {
			fieldA := a.Field(i)
			fieldB := b.Field(i)

			if fieldA.Kind() == reflect.Struct {
				merge(fieldA, fieldB)
				continue
			}

			if fieldB.IsZero() {
				continue
			}

			fieldA.Set(fieldB)
		}
	}

	merge(rp, ro)
}

func (p Media) String() string {
	return fmt.Sprintf("%s %dx%d@%.1ffps %s", p.DeviceID, p.Width, p.Height, p.FrameRate, p.FrameFormat)
}

// Video represents a depth stream's properties
type Video struct {
	Width, Height int
	FrameRate     float32
	FrameFormat   frame.Format
}
