// Package vision adapts an OpenCV camera and a hand-landmark network to the
// gesture.HandSource interface.
package vision

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"gocv.io/x/gocv"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/gesture"
)

// landmarks per hand in the model output, 3 floats each
const handLandmarks = 21

// Detector finds hands in a video frame.
type Detector interface {
	// Detect runs inference on frame. ts is the frame's monotonic timestamp
	// and must increase between calls.
	Detect(frame gocv.Mat, ts time.Duration) ([]gesture.Hand, error)

	// Close releases any resources held by the detector.
	Close() error
}

// LandmarkNet runs a single-hand landmark model through OpenCV's DNN module.
// The model takes an RGB image of InputSize×InputSize scaled to [0,1] and
// emits 21 (x, y, z) landmarks in input pixels plus a hand presence score.
// With MaxHands 2 the left and right frame halves are scanned separately.
type LandmarkNet struct {
	net     gocv.Net
	cfg     config.Detector
	outputs []string
	last    time.Duration
}

// NewLandmarkNet loads the model named in cfg.
func NewLandmarkNet(cfg config.Detector) (*LandmarkNet, error) {
	if _, err := os.Stat(cfg.Model); err != nil {
		return nil, fmt.Errorf("%w: %v", gesture.ErrModelLoad, err)
	}
	net := gocv.ReadNet(cfg.Model, cfg.ModelConfig)
	if net.Empty() {
		_ = net.Close()
		return nil, fmt.Errorf("%w: cannot read %s", gesture.ErrModelLoad, cfg.Model)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		_ = net.Close()
		return nil, fmt.Errorf("%w: %v", gesture.ErrModelLoad, err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		_ = net.Close()
		return nil, fmt.Errorf("%w: %v", gesture.ErrModelLoad, err)
	}
	return &LandmarkNet{
		net:     net,
		cfg:     cfg,
		outputs: []string{cfg.LandmarkOutput, cfg.PresenceOutput},
		last:    -1,
	}, nil
}

// Detect implements Detector.
func (n *LandmarkNet) Detect(frame gocv.Mat, ts time.Duration) ([]gesture.Hand, error) {
	if ts <= n.last {
		return nil, fmt.Errorf("timestamp %v not after %v", ts, n.last)
	}
	n.last = ts
	if frame.Empty() {
		return nil, gesture.ErrNoFrame
	}

	size := image.Pt(frame.Cols(), frame.Rows())
	var hands []gesture.Hand
	for _, region := range regions(size, n.cfg.MaxHands) {
		h, ok, err := n.detectRegion(frame, region, size)
		if err != nil {
			return nil, err
		}
		if ok {
			hands = append(hands, h)
		}
	}
	return hands, nil
}

func (n *LandmarkNet) detectRegion(frame gocv.Mat, region image.Rectangle, size image.Point) (gesture.Hand, bool, error) {
	roi := frame.Region(region)
	defer roi.Close()

	in := n.cfg.InputSize
	blob := gocv.BlobFromImage(roi, 1.0/255.0, image.Pt(in, in), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	n.net.SetInput(blob, "")
	outs := n.net.ForwardLayers(n.outputs)
	defer func() {
		for i := range outs {
			outs[i].Close()
		}
	}()
	if len(outs) != 2 {
		return nil, false, fmt.Errorf("landmark model returned %d outputs, want 2", len(outs))
	}

	if score := outs[1].GetFloatAt(0, 0); float64(score) < n.cfg.MinConfidence {
		return nil, false, nil
	}
	raw, err := outs[0].DataPtrFloat32()
	if err != nil {
		return nil, false, fmt.Errorf("read landmarks: %w", err)
	}
	h, err := toFrame(raw, region, size, in)
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}

// Close implements Detector.
func (n *LandmarkNet) Close() error {
	return n.net.Close()
}

// regions splits the frame into one scan window per expected hand.
func regions(size image.Point, maxHands int) []image.Rectangle {
	full := image.Rect(0, 0, size.X, size.Y)
	if maxHands < 2 || size.X < 2 {
		return []image.Rectangle{full}
	}
	mid := size.X / 2
	return []image.Rectangle{
		image.Rect(0, 0, mid, size.Y),
		image.Rect(mid, 0, size.X, size.Y),
	}
}

// toFrame converts model landmarks, in input pixels of a region, into
// coordinates normalized to the whole frame.
func toFrame(raw []float32, region image.Rectangle, size image.Point, inputSize int) (gesture.Hand, error) {
	if len(raw) < handLandmarks*3 {
		return nil, fmt.Errorf("landmark output has %d values, want %d", len(raw), handLandmarks*3)
	}
	if size.X <= 0 || size.Y <= 0 || inputSize <= 0 {
		return nil, errors.New("empty frame geometry")
	}
	in := float64(inputSize)
	w, h := float64(region.Dx()), float64(region.Dy())

	hand := make(gesture.Hand, handLandmarks)
	for i := range hand {
		x := float64(raw[i*3]) / in
		y := float64(raw[i*3+1]) / in
		z := float64(raw[i*3+2]) / in
		hand[i] = gesture.Point{
			X: (float64(region.Min.X) + x*w) / float64(size.X),
			Y: (float64(region.Min.Y) + y*h) / float64(size.Y),
			Z: z,
		}
	}
	return hand, nil
}
