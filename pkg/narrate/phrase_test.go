package narrate

import "testing"

func TestSceneBucket(t *testing.T) {
	tests := []struct {
		count    int
		position string
		want     Bucket
	}{
		{0, "", BucketNone},
		{0, "left", BucketNone},
		{1, "left", Bucket("one:left")},
		{2, "center", Bucket("two:center")},
		{3, "right", Bucket("many:right")},
		{7, "right", Bucket("many:right")},
	}

	for _, tt := range tests {
		if got := SceneBucket(tt.count, tt.position); got != tt.want {
			t.Errorf("SceneBucket(%d, %q) = %q, want %q", tt.count, tt.position, got, tt.want)
		}
	}
}

func TestSceneBucket_CountClassCollapses(t *testing.T) {
	if SceneBucket(3, "left") != SceneBucket(5, "left") {
		t.Error("counts of three or more should share one bucket")
	}
	if SceneBucket(1, "left") == SceneBucket(2, "left") {
		t.Error("one and two person scenes must not share a bucket")
	}
}

func TestDescribe_NoPeople(t *testing.T) {
	if got := Describe(0, nil); got != "No people detected." {
		t.Errorf("got %q", got)
	}
}

func TestDescribe_OnePersonPositions(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"left", "One person on your left."},
		{"center", "One person in front of you."},
		{"right", "One person on your right."},
	}

	for _, tt := range tests {
		if got := Describe(1, &Person{Position: tt.position}); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.position, got, tt.want)
		}
	}
}

func TestDescribe_WithAttributes(t *testing.T) {
	top := &Person{Position: "center", Gender: "female", Activity: "sitting"}
	want := "One person in front of you, a woman, sitting."
	if got := Describe(1, top); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDescribe_PartialAttributes(t *testing.T) {
	// Unresolved fields are left out rather than narrated as unknown.
	if got := Describe(1, &Person{Position: "left", Activity: "walking"}); got != "One person on your left, walking." {
		t.Errorf("activity only: got %q", got)
	}
	if got := Describe(1, &Person{Position: "left", Gender: "male"}); got != "One person on your left, a man." {
		t.Errorf("gender only: got %q", got)
	}
	if got := Describe(1, &Person{Position: "left", Activity: "other"}); got != "One person on your left." {
		t.Errorf("catch-all activity should not be narrated: got %q", got)
	}
}

func TestDescribe_MultiplePeople(t *testing.T) {
	if got := Describe(2, &Person{Position: "right"}); got != "Two people. The nearest is on your right." {
		t.Errorf("two people: got %q", got)
	}
	if got := Describe(4, &Person{Position: "center"}); got != "4 people. The nearest is in front of you." {
		t.Errorf("many people: got %q", got)
	}
}
