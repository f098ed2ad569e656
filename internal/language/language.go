package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// words maps English language names to ISO 639-1 codes. Whisper's own CLI
// accepts these names, so users coming from it tend to write them.
var words = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"catalan":    "ca",
	"greek":      "el",
}

// ToISO2 converts a language code, tag, or English name to ISO 639-1.
// Returns empty string for input that cannot be mapped to a two-letter code.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if mapped, ok := words[code]; ok {
		return mapped
	}
	tag, err := xlanguage.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return ""
	}
	iso := base.String()
	if len(iso) != 2 {
		return ""
	}
	return iso
}

// DisplayName returns the English name for a language code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	iso := ToISO2(trimmed)
	if iso == "" {
		return strings.ToUpper(trimmed)
	}
	name := display.English.Languages().Name(xlanguage.Make(iso))
	if name == "" {
		return strings.ToUpper(iso)
	}
	return name
}
