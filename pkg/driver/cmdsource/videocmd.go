package cmdsource

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/pion/depthcolor/pkg/frame"
	"github.com/pion/depthcolor/pkg/io/video"
	"github.com/pion/depthcolor/pkg/prop"
)

// VideoRecord starts the command. Frames returned by the reader are only valid
// until the next Read.
func (c *cmdSource) VideoRecord(inputProp prop.Media) (video.Reader, error) {
	if c.execCmd == nil {
		return nil, fmt.Errorf("cmdsource: command is not opened")
	}

	getFrameSize, ok := frame.FrameSizeMap[inputProp.FrameFormat]
	if !ok {
		return nil, errUnsupportedFormat
	}
	frameSize := getFrameSize(inputProp.Width, inputProp.Height)

	decoder, err := frame.NewDecoder(inputProp.FrameFormat)
	if err != nil {
		return nil, err
	}

	stdErr, err := c.execCmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	stdOut, err := c.execCmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	c.addEnvVars(inputProp.Video)

	if err := c.execCmd.Start(); err != nil {
		return nil, err
	}

	// send standard error to the debug log prefixed with (<command> stderr)
	go func() {
		stderrPrefix := fmt.Sprintf("(%s stderr): ", c.cmdArgs[0])
		scanner := bufio.NewScanner(stdErr)
		for scanner.Scan() {
			logger.Debug(stderrPrefix + scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			logger.Errorf("%sread failed: %v", stderrPrefix, err)
		}
	}()

	buf := make([]byte, frameSize)
	var readErr error
	r := video.ReaderFunc(func() (image.Image, func(), error) {
		if readErr != nil {
			return nil, func() {}, readErr
		}

		done := make(chan error, 1)
		go func() {
			_, err := io.ReadFull(stdOut, buf)
			if err == io.ErrUnexpectedEOF {
				logger.Warnf("discarding truncated frame from %s", c.cmdArgs[0])
				err = io.EOF
			}
			done <- err
		}()

		var timeout <-chan time.Time
		if c.readTimeout > 0 {
			timer := time.NewTimer(c.readTimeout)
			defer timer.Stop()
			timeout = timer.C
		}

		select {
		case err := <-done:
			if err != nil {
				readErr = err
				return nil, func() {}, err
			}
		case <-timeout:
			// The pending read still owns buf, so the stream cannot be resumed.
			readErr = errReadTimeout
			return nil, func() {}, errReadTimeout
		}

		img, err := decoder.Decode(buf, inputProp.Width, inputProp.Height)
		if err != nil {
			return nil, func() {}, err
		}
		return img, func() {}, nil
	})

	return r, nil
}
