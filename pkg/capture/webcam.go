package capture

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam reads frames from a local video device via OpenCV.
type Webcam struct {
	config Config

	mu     sync.Mutex
	device *gocv.VideoCapture
	closed bool
}

var _ Camera = (*Webcam)(nil)

// OpenWebcam opens the configured capture device.
func OpenWebcam(opts ...Option) (*Webcam, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	device, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open capture device %d: %w", cfg.DeviceID, err)
	}

	return &Webcam{config: cfg, device: device}, nil
}

// Frame grabs one frame from the device, downscales it under the width cap,
// and encodes it as JPEG.
func (w *Webcam) Frame() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrCameraClosed
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := w.device.Read(&img); !ok || img.Empty() {
		return nil, fmt.Errorf("read frame from device %d failed", w.config.DeviceID)
	}

	width, height := scaledSize(img.Cols(), img.Rows(), w.config.MaxWidth)
	if width != img.Cols() {
		scaled := gocv.NewMat()
		defer scaled.Close()
		gocv.Resize(img, &scaled, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
		return encodeJPEG(scaled, w.config.Quality)
	}

	return encodeJPEG(img, w.config.Quality)
}

// Close releases the capture device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.device.Close()
}

func encodeJPEG(img gocv.Mat, quality int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, []int{gocv.IMWriteJpegQuality, quality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// The buffer is backed by OpenCV memory, copy before release.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
