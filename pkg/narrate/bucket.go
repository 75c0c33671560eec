// Package narrate turns detection results into spoken descriptions and owns
// the client interaction state machines: gesture disambiguation and the
// auto-repeat announcement loop.
package narrate

// Bucket is a coarse summary of the current scene, used only for change
// detection. Auto-repeat announces a result only when its bucket differs
// from the previous cycle's.
type Bucket string

const (
	// BucketNone means no people were detected.
	BucketNone Bucket = "none"
	// BucketError is the sentinel for failed cycles, so repeated identical
	// failures collapse into one announcement.
	BucketError Bucket = "error"
)

// SceneBucket quantizes a scene into its dedup key: the count class (one,
// two, or many) combined with the nearest person's position.
func SceneBucket(count int, position string) Bucket {
	switch {
	case count <= 0:
		return BucketNone
	case count == 1:
		return Bucket("one:" + position)
	case count == 2:
		return Bucket("two:" + position)
	default:
		return Bucket("many:" + position)
	}
}
