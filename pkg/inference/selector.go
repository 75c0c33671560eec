package inference

import (
	"errors"
	"io"
)

// BestFrame reduces a stream of result frames to the most complete one.
//
// The service may emit intermediate partial results before converging, with
// no explicit completion marker. The frame with the strictly greatest object
// count is a cheap proxy for the most complete one; on ties the earlier frame
// is kept. An empty stream yields a nil frame and no error.
func BestFrame(stream FrameStream) (*ResultFrame, error) {
	var best *ResultFrame
	for {
		frame, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return best, nil
		}
		if err != nil {
			return nil, err
		}
		if best == nil || len(frame.Objects) > len(best.Objects) {
			best = frame
		}
	}
}
