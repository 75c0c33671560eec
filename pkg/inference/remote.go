package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RemoteConfig holds connection settings for the hosted inference service.
// Use functional options (WithXxx) to set these values.
type RemoteConfig struct {
	APIKey      string
	ProfileID   string
	EndpointURL string

	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration

	Logger *slog.Logger
}

// Option is a functional option for configuring the remote engine.
type Option func(*RemoteConfig)

// WithAPIKey sets the API credential.
func WithAPIKey(key string) Option {
	return func(c *RemoteConfig) {
		c.APIKey = key
	}
}

// WithProfileID sets the target inference profile identifier.
func WithProfileID(id string) Option {
	return func(c *RemoteConfig) {
		c.ProfileID = id
	}
}

// WithEndpoint overrides the default service endpoint.
func WithEndpoint(url string) Option {
	return func(c *RemoteConfig) {
		c.EndpointURL = url
	}
}

// WithReadTimeout sets the per-frame read deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(c *RemoteConfig) {
		c.ReadTimeout = d
	}
}

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *RemoteConfig) {
		c.Logger = logger
	}
}

// DefaultRemoteConfig returns sensible defaults for the remote engine.
func DefaultRemoteConfig() *RemoteConfig {
	return &RemoteConfig{
		EndpointURL:      "wss://infer.sightline.dev/v1/session",
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		Logger:           slog.Default(),
	}
}

// RemoteEngine dials websocket sessions against the hosted inference service.
type RemoteEngine struct {
	config *RemoteConfig
}

// NewRemote creates a remote engine. The API key and profile ID are required.
func NewRemote(opts ...Option) (*RemoteEngine, error) {
	cfg := DefaultRemoteConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.ProfileID == "" {
		return nil, ErrNoProfileID
	}
	return &RemoteEngine{config: cfg}, nil
}

// Open dials a session and pushes the profile's capability configuration.
func (e *RemoteEngine) Open(ctx context.Context, profile Profile) (Conn, error) {
	header := make(http.Header)
	header.Set("Authorization", "Bearer "+e.config.APIKey)

	dialer := websocket.Dialer{
		HandshakeTimeout: e.config.HandshakeTimeout,
	}

	ws, _, err := dialer.DialContext(ctx, e.config.EndpointURL, header)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", e.config.EndpointURL, err)
	}

	conn := &remoteConn{
		ws:          ws,
		profile:     profile,
		readTimeout: e.config.ReadTimeout,
		logger:      e.config.Logger.With("component", "inference.remote", "profile", profile.Name),
	}

	if err := conn.sendSetup(); err != nil {
		ws.Close()
		return nil, fmt.Errorf("configure session: %w", err)
	}

	return conn, nil
}

// remoteConn is one websocket session. The session manager serializes access,
// so reads and writes never interleave across requests.
type remoteConn struct {
	ws          *websocket.Conn
	wsMu        sync.Mutex
	profile     Profile
	readTimeout time.Duration
	logger      *slog.Logger
	closed      bool
	closedMu    sync.Mutex
}

// setupMessage is the capability configuration pushed when the session is
// established.
type setupMessage struct {
	Setup struct {
		ProfileID    string   `json:"profile_id"`
		Mode         string   `json:"mode"`
		Capabilities []string `json:"capabilities"`
		Prompt       string   `json:"prompt,omitempty"`
	} `json:"setup"`
}

func (c *remoteConn) sendSetup() error {
	var msg setupMessage
	msg.Setup.ProfileID = c.profile.ProfileID
	msg.Setup.Mode = c.profile.Name
	msg.Setup.Capabilities = c.profile.Capabilities
	msg.Setup.Prompt = c.profile.Prompt
	return c.sendJSON(msg)
}

func (c *remoteConn) sendJSON(v any) error {
	c.wsMu.Lock()
	defer c.wsMu.Unlock()
	return c.ws.WriteJSON(v)
}

// inferMessage submits one image for analysis.
type inferMessage struct {
	Infer struct {
		RequestID string `json:"request_id"`
		Image     string `json:"image"`
		MimeType  string `json:"mime_type"`
	} `json:"infer"`
}

// Infer submits a JPEG image and returns the stream of result frames.
func (c *remoteConn) Infer(ctx context.Context, image []byte) (FrameStream, error) {
	c.closedMu.Lock()
	if c.closed {
		c.closedMu.Unlock()
		return nil, ErrSessionClosed
	}
	c.closedMu.Unlock()

	var msg inferMessage
	msg.Infer.RequestID = uuid.NewString()
	msg.Infer.Image = base64.StdEncoding.EncodeToString(image)
	msg.Infer.MimeType = "image/jpeg"

	if err := c.sendJSON(msg); err != nil {
		return nil, fmt.Errorf("submit image: %w", err)
	}

	c.logger.Debug("image submitted", "request_id", msg.Infer.RequestID, "bytes", len(image))

	return &remoteStream{
		conn:      c,
		requestID: msg.Infer.RequestID,
		ctx:       ctx,
	}, nil
}

// Close releases the websocket connection.
func (c *remoteConn) Close() error {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}

// serviceMessage is one message read off the session during a request.
type serviceMessage struct {
	Result *struct {
		RequestID string       `json:"request_id"`
		Frame     *ResultFrame `json:"frame"`
	} `json:"result,omitempty"`
	Done *struct {
		RequestID string `json:"request_id"`
	} `json:"done,omitempty"`
	Error *struct {
		RequestID string `json:"request_id"`
		Code      string `json:"code"`
		Message   string `json:"message"`
	} `json:"error,omitempty"`
}

// remoteStream reads result frames for a single request off the session.
type remoteStream struct {
	conn      *remoteConn
	requestID string
	ctx       context.Context
	done      bool
}

// Recv returns the next frame, or io.EOF once the service signals completion.
func (s *remoteStream) Recv() (*ResultFrame, error) {
	if s.done {
		return nil, io.EOF
	}

	for {
		if err := s.ctx.Err(); err != nil {
			return nil, err
		}

		s.conn.ws.SetReadDeadline(time.Now().Add(s.conn.readTimeout))
		_, data, err := s.conn.ws.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}

		var msg serviceMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.conn.logger.Debug("skipping malformed message", "error", err)
			continue
		}

		switch {
		case msg.Error != nil:
			s.done = true
			return nil, &ServiceError{
				Code:    msg.Error.Code,
				Message: msg.Error.Message,
				Profile: s.conn.profile.Name,
			}
		case msg.Done != nil && msg.Done.RequestID == s.requestID:
			s.done = true
			return nil, io.EOF
		case msg.Result != nil && msg.Result.RequestID == s.requestID && msg.Result.Frame != nil:
			return msg.Result.Frame, nil
		default:
			// Message for another request or an unknown shape; skip it.
			continue
		}
	}
}

// Close marks the stream finished. The session stays open for the next request.
func (s *remoteStream) Close() error {
	s.done = true
	return nil
}

// Verify RemoteEngine implements Engine at compile time.
var _ Engine = (*RemoteEngine)(nil)
