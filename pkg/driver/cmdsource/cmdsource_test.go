package cmdsource

import (
	"image"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/depthcolor/pkg/driver"
	"github.com/pion/depthcolor/pkg/driver/availability"
	"github.com/pion/depthcolor/pkg/frame"
	"github.com/pion/depthcolor/pkg/prop"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
}

func depthProp(w, h int) prop.Media {
	return prop.Media{Video: prop.Video{Width: w, Height: h, FrameFormat: frame.FormatZ16}}
}

func TestNewCmdSourceInvalidCommand(t *testing.T) {
	for _, command := range []string{"", "   ", `sh -c "unterminated`} {
		_, err := newCmdSource(command, nil, time.Second)
		assert.ErrorIs(t, err, errInvalidCommand, command)
	}
}

func TestNewCmdSourceQuotedArgs(t *testing.T) {
	c, err := newCmdSource(`sh -c 'printf "%s" 1'`, nil, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "-c", `printf "%s" 1`}, c.cmdArgs)
}

func TestOpenMissingCommand(t *testing.T) {
	c, err := newCmdSource("depthcolor-command-that-does-not-exist", nil, time.Second)
	require.NoError(t, err)

	err = c.Open()
	assert.ErrorIs(t, err, availability.ErrNoDevice)
	assert.True(t, availability.IsError(err))
}

func TestVideoRecord(t *testing.T) {
	requireShell(t)

	// Two little endian samples, 12 and 800.
	c, err := newCmdSource(`sh -c 'printf "\014\000\040\003"'`, nil, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Open())

	r, err := c.VideoRecord(depthProp(2, 1))
	require.NoError(t, err)

	img, _, err := r.Read()
	require.NoError(t, err)
	gray, ok := img.(*image.Gray16)
	require.True(t, ok, "expected *image.Gray16, got %T", img)
	assert.Equal(t, uint16(12), gray.Gray16At(0, 0).Y)
	assert.Equal(t, uint16(800), gray.Gray16At(1, 0).Y)

	_, _, err = r.Read()
	assert.Equal(t, io.EOF, err)
	_, _, err = r.Read()
	assert.Equal(t, io.EOF, err, "errors are sticky")

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close(), "closing twice is a no-op")
}

func TestVideoRecordEnv(t *testing.T) {
	requireShell(t)

	// Echo the requested width back as a single 1x1 frame.
	c, err := newCmdSource(`sh -c 'test "$DEPTHCOLOR_Width" = 1 && printf "\007\000"'`, nil, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Open())
	defer c.Close()

	r, err := c.VideoRecord(depthProp(1, 1))
	require.NoError(t, err)

	img, _, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, uint16(7), img.(*image.Gray16).Gray16At(0, 0).Y)
}

func TestVideoRecordTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep is not available")
	}

	c, err := newCmdSource("sleep 10", nil, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, c.Open())
	defer c.Close()

	r, err := c.VideoRecord(depthProp(4, 4))
	require.NoError(t, err)

	_, _, err = r.Read()
	assert.ErrorIs(t, err, errReadTimeout)
}

func TestVideoRecordUnsupportedFormat(t *testing.T) {
	c, err := newCmdSource("true", nil, time.Second)
	require.NoError(t, err)
	c.execCmd = exec.Command("true")

	_, err = c.VideoRecord(prop.Media{Video: prop.Video{Width: 1, Height: 1, FrameFormat: "MJPG"}})
	assert.ErrorIs(t, err, errUnsupportedFormat)
}

func TestAddCmdSource(t *testing.T) {
	props := []prop.Media{depthProp(2, 1)}
	require.NoError(t, AddCmdSource("TestAddCmdSource", "true", props, time.Second))

	drivers := driver.GetManager().Query(driver.FilterLabel("TestAddCmdSource"))
	require.Len(t, drivers, 1)
	assert.Equal(t, driver.CmdSource, drivers[0].Info().DeviceType)
	assert.Nil(t, drivers[0].Properties(), "closed drivers have no properties")

	require.NoError(t, drivers[0].Open())
	defer drivers[0].Close()
	assert.Equal(t, props, drivers[0].Properties())
}
