// Package cmdsource reads depth frames from the standard output of an external
// command, e.g. a camera SDK tool or ffmpeg writing raw gray16le video.
package cmdsource

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"time"

	"github.com/google/shlex"

	"github.com/pion/depthcolor/internal/logging"
	"github.com/pion/depthcolor/pkg/driver"
	"github.com/pion/depthcolor/pkg/driver/availability"
	"github.com/pion/depthcolor/pkg/prop"
)

var (
	errReadTimeout       = errors.New("read timeout")
	errInvalidCommand    = errors.New("invalid command")
	errUnsupportedFormat = errors.New("unsupported frame format, no frame size function found")
)

var logger = logging.NewLogger("driver/cmdsource")

// envPrefix prefixes the environment variables describing the requested stream.
const envPrefix = "DEPTHCOLOR_"

type cmdSource struct {
	cmdArgs     []string
	props       []prop.Media
	readTimeout time.Duration
	execCmd     *exec.Cmd
}

// AddCmdSource registers a driver that runs command (split like a shell would,
// respecting quotes) and reads raw frames described by mediaProperties from its
// standard output. A read that takes longer than readTimeout fails the stream.
func AddCmdSource(label string, command string, mediaProperties []prop.Media, readTimeout time.Duration) error {
	c, err := newCmdSource(command, mediaProperties, readTimeout)
	if err != nil {
		return err
	}

	return driver.GetManager().Register(c, driver.Info{
		Label:      label,
		DeviceType: driver.CmdSource,
		Priority:   driver.PriorityNormal,
	})
}

func newCmdSource(command string, mediaProperties []prop.Media, readTimeout time.Duration) (*cmdSource, error) {
	cmdArgs, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidCommand, err)
	}
	if len(cmdArgs) == 0 || cmdArgs[0] == "" {
		return nil, errInvalidCommand
	}
	return &cmdSource{
		cmdArgs:     cmdArgs,
		props:       mediaProperties,
		readTimeout: readTimeout,
	}, nil
}

func (c *cmdSource) Open() error {
	path, err := exec.LookPath(c.cmdArgs[0])
	if err != nil {
		return availability.Wrap(availability.ErrNoDevice, err)
	}
	c.execCmd = exec.Command(path, c.cmdArgs[1:]...)
	return nil
}

func (c *cmdSource) Close() error {
	cmd := c.execCmd
	c.execCmd = nil
	if cmd == nil || cmd.Process == nil {
		return nil
	}

	_ = cmd.Process.Signal(os.Interrupt) // send SIGINT to process to stop it
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		return err // command exited normally or with an error code
	case <-time.After(3 * time.Second):
		return cmd.Process.Kill() // command timed out, kill it & return error
	}
}

func (c *cmdSource) Properties() []prop.Media {
	return c.props
}

// addEnvVars exposes the fields of props to the command, e.g. DEPTHCOLOR_Width=640.
func (c *cmdSource) addEnvVars(props interface{}) {
	c.execCmd.Env = os.Environ() // inherit environment variables
	values := reflect.ValueOf(props)
	types := values.Type()
	for i := 0; i < values.NumField(); i++ {
		envVar := fmt.Sprintf("%s%s=%v", envPrefix, types.Field(i).Name, values.Field(i))
		logger.Debugf("adding environment variable %s", envVar)
		c.execCmd.Env = append(c.execCmd.Env, envVar)
	}
}
