package vision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/gesture"
)

// ErrStreamEnded is returned when the capture device stops delivering frames.
var ErrStreamEnded = errors.New("camera stream ended")

// Camera grabs mirrored frames from a capture device.
type Camera struct {
	vc     *gocv.VideoCapture
	raw    gocv.Mat
	frame  gocv.Mat
	device int
}

// OpenCamera opens the device and requests the configured resolution and rate.
func OpenCamera(cfg config.Camera) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", gesture.ErrCameraAccess, cfg.Device, err)
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, fmt.Errorf("%w: device %d not opened", gesture.ErrCameraAccess, cfg.Device)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	}
	if cfg.FPS > 0 {
		vc.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))
	}
	return &Camera{
		vc:     vc,
		raw:    gocv.NewMat(),
		frame:  gocv.NewMat(),
		device: cfg.Device,
	}, nil
}

// Read blocks for the next frame. The returned Mat is owned by the camera and
// is overwritten by the following Read.
func (c *Camera) Read() (gocv.Mat, error) {
	if ok := c.vc.Read(&c.raw); !ok {
		return c.frame, fmt.Errorf("%w: device %d", ErrStreamEnded, c.device)
	}
	if c.raw.Empty() {
		return c.frame, gesture.ErrNoFrame
	}
	// selfie view, so left hand appears on the left
	gocv.Flip(c.raw, &c.frame, 1)
	return c.frame, nil
}

// Close stops the stream and frees frame buffers.
func (c *Camera) Close() error {
	err := c.vc.Close()
	return errors.Join(err, c.raw.Close(), c.frame.Close())
}

// Pipeline reads camera frames and runs the detector on each of them.
type Pipeline struct {
	cam   *Camera
	det   Detector
	start time.Time
}

// Open loads the landmark model, then opens the camera. Model failures wrap
// gesture.ErrModelLoad and camera failures wrap gesture.ErrCameraAccess.
func Open(ctx context.Context, cam config.Camera, det config.Detector) (*Pipeline, error) {
	net, err := NewLandmarkNet(det)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		_ = net.Close()
		return nil, err
	}
	c, err := OpenCamera(cam)
	if err != nil {
		_ = net.Close()
		return nil, err
	}
	return NewPipeline(c, net), nil
}

// NewPipeline pairs an opened camera with a detector.
func NewPipeline(cam *Camera, det Detector) *Pipeline {
	return &Pipeline{cam: cam, det: det, start: time.Now()}
}

// Hands implements gesture.HandSource.
func (p *Pipeline) Hands(ctx context.Context) ([]gesture.Hand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame, err := p.cam.Read()
	if err != nil {
		return nil, err
	}
	// time.Since reads the monotonic clock
	return p.det.Detect(frame, time.Since(p.start))
}

// Close implements gesture.HandSource.
func (p *Pipeline) Close() error {
	return errors.Join(p.cam.Close(), p.det.Close())
}
