package driver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

var (
	recordErr = fmt.Errorf("failed to start recording")
)

type adapterMock struct{}

func (a *adapterMock) Open() error              { return nil }
func (a *adapterMock) Close() error             { return nil }
func (a *adapterMock) Properties() []prop.Media { return []prop.Media{{}} }

type videoAdapterMock struct{ adapterMock }

func (a *videoAdapterMock) VideoRecord(p prop.Media) (r video.Reader, err error) { return nil, nil }

type videoAdapterBrokenMock struct{ adapterMock }

func (a *videoAdapterBrokenMock) VideoRecord(p prop.Media) (r video.Reader, err error) {
	return nil, recordErr
}

func TestVideoWrapperState(t *testing.T) {
	var a videoAdapterMock
	d := wrapAdapter(&a, Info{Label: "mock"})
	require.NotNil(t, d)

	assert.Nil(t, d.Properties())
	assert.Equal(t, StateClosed, d.Status())
	assert.Equal(t, "mock", d.Info().Label)
	assert.NotEmpty(t, d.ID())

	vr := d.(VideoRecorder)
	_, err := vr.VideoRecord(prop.Media{})
	assert.Error(t, err, "expected to get an invalid state")

	require.NoError(t, d.Open())
	assert.Equal(t, StateOpened, d.Status())
	assert.Len(t, d.Properties(), 1)
	assert.Error(t, d.Open(), "expected to get an invalid state")

	_, err = vr.VideoRecord(prop.Media{})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, d.Status())

	_, err = vr.VideoRecord(prop.Media{})
	assert.Error(t, err, "expected to get an invalid state")
	assert.Equal(t, StateRunning, d.Status())

	require.NoError(t, d.Close())
	assert.Equal(t, StateClosed, d.Status())
}

func TestVideoWrapperWithBrokenRecorderState(t *testing.T) {
	var a videoAdapterBrokenMock
	d := wrapAdapter(&a, Info{})

	require.NoError(t, d.Open())

	vr := d.(VideoRecorder)
	_, err := vr.VideoRecord(prop.Media{})
	assert.Equal(t, recordErr, err)
	assert.Equal(t, StateClosed, d.Status())
}

func TestWrapAdapterRequiresRecorder(t *testing.T) {
	assert.Nil(t, wrapAdapter(&adapterMock{}, Info{}))
}
