// Package capture provides camera frame acquisition for the client. Frames
// are delivered as JPEG bytes, downscaled to keep upload latency low.
package capture

import "errors"

// Camera produces JPEG frames on demand.
type Camera interface {
	// Frame grabs one frame, encoded as JPEG.
	Frame() ([]byte, error)
	Close() error
}

// ErrCameraClosed is returned when a frame is requested after Close.
var ErrCameraClosed = errors.New("capture: camera closed")

// Config holds camera parameters.
type Config struct {
	DeviceID int
	// MaxWidth caps the encoded frame width. Larger frames are downscaled
	// preserving aspect ratio; 0 disables scaling.
	MaxWidth int
	// Quality is the JPEG encode quality, 1-100.
	Quality int
}

// DefaultConfig returns production defaults tuned for upload latency.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		MaxWidth: 1024,
		Quality:  85,
	}
}

// Option customizes a camera Config.
type Option func(*Config)

// WithDeviceID selects the capture device.
func WithDeviceID(id int) Option {
	return func(c *Config) { c.DeviceID = id }
}

// WithMaxWidth caps the encoded frame width.
func WithMaxWidth(w int) Option {
	return func(c *Config) { c.MaxWidth = w }
}

// WithQuality sets the JPEG encode quality.
func WithQuality(q int) Option {
	return func(c *Config) { c.Quality = q }
}

// scaledSize computes the downscaled dimensions for a source frame under the
// width cap, preserving aspect ratio. Returns the source dimensions unchanged
// when no scaling is needed.
func scaledSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth || width <= 0 || height <= 0 {
		return width, height
	}
	scaled := height * maxWidth / width
	if scaled < 1 {
		scaled = 1
	}
	return maxWidth, scaled
}
