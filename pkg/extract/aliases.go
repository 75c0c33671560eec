package extract

// Canonical attribute values. Labels that do not map to one of these stay
// unresolved; the extractor never guesses.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Canonical activities, a fixed enumerated set.
const (
	ActivityWalking    = "walking"
	ActivityRunning    = "running"
	ActivitySitting    = "sitting"
	ActivityStanding   = "standing"
	ActivityExercising = "exercising"
	ActivityEating     = "eating"
	ActivityTalking    = "talking"
	ActivityWorking    = "working"
	ActivityPlaying    = "playing"
	ActivityOther      = "other"
)

// Field-name aliases seen across model versions. The payload shape drifts,
// so each logical field is checked under several names.
var (
	categoryKeys   = []string{"category", "class_category", "classCategory", "type", "attribute", "name"}
	labelKeys      = []string{"label", "classLabel", "class_label", "class", "value", "text"}
	confidenceKeys = []string{"confidence", "score", "probability"}
)

// genderAliases maps a normalized label to a canonical gender.
var genderAliases = map[string]string{
	"male":      GenderMale,
	"m":         GenderMale,
	"man":       GenderMale,
	"boy":       GenderMale,
	"gentleman": GenderMale,
	"female":    GenderFemale,
	"f":         GenderFemale,
	"woman":     GenderFemale,
	"girl":      GenderFemale,
	"lady":      GenderFemale,
}

// activityAliases maps a normalized label to a canonical activity.
var activityAliases = map[string]string{
	"walking":     ActivityWalking,
	"walk":        ActivityWalking,
	"strolling":   ActivityWalking,
	"running":     ActivityRunning,
	"run":         ActivityRunning,
	"jogging":     ActivityRunning,
	"sitting":     ActivitySitting,
	"sit":         ActivitySitting,
	"seated":      ActivitySitting,
	"standing":    ActivityStanding,
	"stand":       ActivityStanding,
	"exercising":  ActivityExercising,
	"exercise":    ActivityExercising,
	"working out": ActivityExercising,
	"workout":     ActivityExercising,
	"eating":      ActivityEating,
	"eat":         ActivityEating,
	"dining":      ActivityEating,
	"talking":     ActivityTalking,
	"talk":        ActivityTalking,
	"speaking":    ActivityTalking,
	"conversing":  ActivityTalking,
	"working":     ActivityWorking,
	"work":        ActivityWorking,
	"playing":     ActivityPlaying,
	"play":        ActivityPlaying,
	"other":       ActivityOther,
}

// femaleTerms is scanned before maleTerms in the free-text fallback: "female"
// contains "male" and "woman" contains "man", so priority order decides.
var femaleTerms = []string{"female", "woman", "women", "girl", "lady"}

// maleTerms are checked only when no female term occurs.
var maleTerms = []string{"male", "man", "men", "boy", "guy", "gentleman"}

// activityKeywords is the free-text keyword set, scanned in this fixed
// order; the first matching activity stops the scan.
var activityKeywords = []struct {
	activity string
	terms    []string
}{
	{ActivityWalking, []string{"walking", "strolling", "walk"}},
	{ActivityRunning, []string{"running", "jogging", "sprinting", "run"}},
	{ActivitySitting, []string{"sitting", "seated"}},
	{ActivityStanding, []string{"standing"}},
	{ActivityExercising, []string{"exercising", "exercise", "workout", "yoga", "stretching"}},
	{ActivityEating, []string{"eating", "dining", "drinking"}},
	{ActivityTalking, []string{"talking", "speaking", "chatting", "conversation"}},
	{ActivityWorking, []string{"working", "typing", "writing", "reading", "laptop", "computer"}},
	{ActivityPlaying, []string{"playing"}},
}
