package inference

import (
	"sort"
	"strings"
)

// MinPersonConfidence is the cutoff below which detections are discarded.
const MinPersonConfidence = 0.35

// Position boundaries as fractions of the source width. The comparisons are
// deliberately non-inclusive: a center fraction of exactly 0.4 or 0.6
// classifies as center.
const (
	leftBoundary  = 0.4
	rightBoundary = 0.6
)

// RankPeople filters a frame's objects down to confident person detections
// and orders them by salience (area times confidence, descending; ties keep
// encounter order). A nil frame yields an empty list, not an error.
func RankPeople(frame *ResultFrame) []PersonRecord {
	if frame == nil {
		return nil
	}

	var people []PersonRecord
	for _, obj := range frame.Objects {
		if !strings.EqualFold(obj.Label, "person") {
			continue
		}
		if obj.Confidence < MinPersonConfidence {
			continue
		}
		people = append(people, PersonRecord{
			Confidence: obj.Confidence,
			Box:        obj.Box,
			Position:   classifyPosition(obj.Box, frame.SourceWidth),
		})
	}

	sort.SliceStable(people, func(i, j int) bool {
		return people[i].Score() > people[j].Score()
	})
	return people
}

// classifyPosition buckets the box's horizontal center into left/center/right.
// Without a usable source width the position defaults to center.
func classifyPosition(box BoundingBox, sourceWidth int) Position {
	if sourceWidth <= 0 {
		return PositionCenter
	}
	frac := box.CenterX() / float64(sourceWidth)
	switch {
	case frac < leftBoundary:
		return PositionLeft
	case frac > rightBoundary:
		return PositionRight
	default:
		return PositionCenter
	}
}
