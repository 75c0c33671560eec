package inference

// Profile names. Each name maps to one cached session.
const (
	// ProfileDetect is the fast person-detection profile.
	ProfileDetect = "detect"

	// ProfileDetail is the slower visual-interpretation profile that asks a
	// natural-language-capable model to characterize the nearest person.
	ProfileDetail = "vi"
)

// detailPrompt is the constrained extraction prompt pushed to the detailed
// profile when its session is established. The model's answer is only loosely
// structured; the extract package mines it afterwards.
const detailPrompt = "Describe the most prominent person in the image. " +
	"Return a classes array with one entry per attribute. " +
	"For the gender attribute use label male or female. " +
	"For the activity attribute use one of: walking, running, sitting, " +
	"standing, exercising, eating, talking, working, playing, other. " +
	"Include a confidence between 0 and 1 for each entry."

// Profile describes one configured inference session.
type Profile struct {
	// Name is the profile key ("detect" or "vi").
	Name string

	// ProfileID is the hosted service's profile identifier.
	ProfileID string

	// Capabilities requested when the session is established.
	Capabilities []string

	// Prompt is the natural-language extraction prompt, for profiles that
	// carry one.
	Prompt string
}

// DetectProfile returns the fast detection profile.
func DetectProfile(profileID string) Profile {
	return Profile{
		Name:         ProfileDetect,
		ProfileID:    profileID,
		Capabilities: []string{"object-detection"},
	}
}

// DetailProfile returns the visual-interpretation profile, including the
// capability configuration with the extraction prompt.
func DetailProfile(profileID string) Profile {
	return Profile{
		Name:         ProfileDetail,
		ProfileID:    profileID,
		Capabilities: []string{"object-detection", "visual-interpretation"},
		Prompt:       detailPrompt,
	}
}
