// Package extract mines gender and activity attributes from the detailed
// profile's classification payload.
//
// The payload is a natural-language model's answer loosely wrapped in
// structure, and its shape drifts across model versions. The extractor
// therefore degrades gracefully through staged fallbacks, from structured
// classification entries down to scanning every string in the response, and
// returns nothing rather than guessing.
package extract

import (
	"sort"
	"strings"
)

// Entry is one classification candidate harvested from the payload.
type Entry struct {
	Category   string
	Label      string
	Confidence float64
}

// Attributes holds the extraction result for one subject. Empty strings mean
// the attribute could not be resolved; that is not an error.
type Attributes struct {
	Gender             string
	GenderConfidence   float64
	Activity           string
	ActivityConfidence float64
}

// Debug carries extraction diagnostics for the vi_debug response surface.
type Debug struct {
	RawKeys       []string `json:"raw_keys"`
	EntryCount    int      `json:"entry_count"`
	SampleEntries []Entry  `json:"sample_entries"`
	LabelText     string   `json:"label_text"`
	StringSample  []string `json:"string_sample"`
}

// Extract runs the staged fallback cascade over the payload graph.
func Extract(root any) Attributes {
	attrs, _ := extract(root, false)
	return attrs
}

// ExtractWithDebug runs the cascade and also returns diagnostics.
func ExtractWithDebug(root any) (Attributes, *Debug) {
	return extract(root, true)
}

func extract(root any, withDebug bool) (Attributes, *Debug) {
	var attrs Attributes

	// Stage 1: harvest every classes array, wherever it occurs.
	entries := CollectClasses(root)

	// Stages 2+3: categorized match, then alias normalization.
	attrs.Gender, attrs.GenderConfidence = matchCategorized(entries, "gender", normalizeGender)
	attrs.Activity, attrs.ActivityConfidence = matchCategorized(entries, "activity", normalizeActivity)

	// Stage 4: scan the concatenated entry labels.
	labelText := joinLabels(entries)
	if attrs.Gender == "" {
		attrs.Gender = scanGender(labelText)
	}
	if attrs.Activity == "" {
		attrs.Activity = scanActivity(labelText)
	}

	// Stage 5: scan every string anywhere in the response graph.
	var allStrings []string
	if attrs.Gender == "" || attrs.Activity == "" || withDebug {
		allStrings = collectStrings(root)
		text := strings.Join(allStrings, " ")
		if attrs.Gender == "" {
			attrs.Gender = scanGender(text)
		}
		if attrs.Activity == "" {
			attrs.Activity = scanActivity(text)
		}
	}

	if !withDebug {
		return attrs, nil
	}

	dbg := &Debug{
		EntryCount: len(entries),
		LabelText:  labelText,
	}
	if m, ok := root.(map[string]any); ok {
		for key := range m {
			dbg.RawKeys = append(dbg.RawKeys, key)
		}
		sort.Strings(dbg.RawKeys)
	}
	dbg.SampleEntries = entries
	if len(dbg.SampleEntries) > 5 {
		dbg.SampleEntries = dbg.SampleEntries[:5]
	}
	dbg.StringSample = allStrings
	if len(dbg.StringSample) > 10 {
		dbg.StringSample = dbg.StringSample[:10]
	}
	return attrs, dbg
}

// CollectClasses walks the whole graph and flattens every array found under a
// field named "classes" into one list of entries, regardless of nesting depth.
func CollectClasses(root any) []Entry {
	var entries []Entry
	w := &walker{}
	w.walk(root, 0, func(key string, value any) {
		if key != "classes" {
			return
		}
		arr, ok := value.([]any)
		if !ok {
			return
		}
		for _, item := range arr {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Category:   stringField(m, categoryKeys),
				Label:      stringField(m, labelKeys),
				Confidence: numberField(m, confidenceKeys),
			})
		}
	})
	return entries
}

// matchCategorized selects the highest-confidence entry whose category
// equals or contains the target attribute name, then normalizes its label.
// An unmappable label yields no value so the next stage can run.
func matchCategorized(entries []Entry, target string, normalize func(string) string) (string, float64) {
	var best *Entry
	for i := range entries {
		cat := strings.ToLower(entries[i].Category)
		if cat != target && !strings.Contains(cat, target) {
			continue
		}
		if best == nil || entries[i].Confidence > best.Confidence {
			best = &entries[i]
		}
	}
	if best == nil {
		return "", 0
	}
	canonical := normalize(best.Label)
	if canonical == "" {
		return "", 0
	}
	return canonical, best.Confidence
}

// normalizeGender maps a label through the gender alias table.
func normalizeGender(label string) string {
	return genderAliases[strings.ToLower(strings.TrimSpace(label))]
}

// normalizeActivity maps a label through the activity alias table.
func normalizeActivity(label string) string {
	return activityAliases[strings.ToLower(strings.TrimSpace(label))]
}

// joinLabels concatenates the textual label fields of every entry.
func joinLabels(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		if e.Label != "" {
			parts = append(parts, e.Label)
		}
		if e.Category != "" {
			parts = append(parts, e.Category)
		}
	}
	return strings.Join(parts, " ")
}

// scanGender looks for gender terms in free text. Female terms are checked
// first: "female" contains "male", so priority order decides.
func scanGender(text string) string {
	lower := strings.ToLower(text)
	for _, term := range femaleTerms {
		if strings.Contains(lower, term) {
			return GenderFemale
		}
	}
	for _, term := range maleTerms {
		if strings.Contains(lower, term) {
			return GenderMale
		}
	}
	return ""
}

// scanActivity looks for activity keywords in fixed priority order; the
// first matching activity wins.
func scanActivity(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range activityKeywords {
		for _, term := range kw.terms {
			if strings.Contains(lower, term) {
				return kw.activity
			}
		}
	}
	return ""
}
