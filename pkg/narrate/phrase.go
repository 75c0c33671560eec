package narrate

import (
	"fmt"
	"strings"
)

// Fixed utterances for the interaction flow.
const (
	// IntroText plays once, on the first tap of a session.
	IntroText = "Welcome. Tap to hear who is in front of you. Press and hold for details. Double tap to turn automatic descriptions on or off."

	// ReminderText plays when a single tap arrives while auto-repeat is on.
	ReminderText = "Automatic descriptions are on. Double tap to turn them off."

	// RepeatOnText and RepeatOffText confirm the double-tap toggle.
	RepeatOnText  = "Automatic descriptions on."
	RepeatOffText = "Automatic descriptions off."

	// CaptureErrorText plays when a capture or inference cycle fails.
	CaptureErrorText = "Sorry, I could not get a picture."
)

// Person is the narration-relevant summary of one detected person. Empty
// attribute fields are simply left out of the sentence.
type Person struct {
	Position string
	Gender   string
	Activity string
}

// Describe builds the spoken sentence for a scene: the person count, the
// nearest person's position, and their attributes when resolved.
func Describe(count int, top *Person) string {
	switch {
	case count <= 0 || top == nil:
		return "No people detected."
	case count == 1:
		return fmt.Sprintf("One person %s%s.", positionPhrase(top.Position), attributePhrase(top))
	case count == 2:
		return fmt.Sprintf("Two people. The nearest is %s%s.", positionPhrase(top.Position), attributePhrase(top))
	default:
		return fmt.Sprintf("%d people. The nearest is %s%s.", count, positionPhrase(top.Position), attributePhrase(top))
	}
}

func positionPhrase(position string) string {
	switch position {
	case "left":
		return "on your left"
	case "right":
		return "on your right"
	default:
		return "in front of you"
	}
}

// attributePhrase renders the gender and activity fragment, degrading to the
// parts that resolved.
func attributePhrase(p *Person) string {
	var parts []string
	switch p.Gender {
	case "male":
		parts = append(parts, "a man")
	case "female":
		parts = append(parts, "a woman")
	}
	if p.Activity != "" && p.Activity != "other" {
		parts = append(parts, p.Activity)
	}
	if len(parts) == 0 {
		return ""
	}
	return ", " + strings.Join(parts, ", ")
}
