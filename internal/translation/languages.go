package translation

import (
	"fmt"
	"sort"
	"strings"
)

type LanguageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var languageLabels = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
}

// SupportedLanguageCodes returns the fixed language set, sorted.
func SupportedLanguageCodes() []string {
	codes := make([]string, 0, len(languageLabels))
	for code := range languageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func LanguageOptions() []LanguageOption {
	codes := SupportedLanguageCodes()
	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, LanguageOption{
			Code:  code,
			Label: languageLabels[code],
		})
	}
	return options
}

func IsSupportedLanguage(code string) bool {
	_, ok := languageLabels[normalizeLangCode(code)]
	return ok
}

// ValidatePair checks both codes against the fixed language set.
func ValidatePair(sourceLang, targetLang string) error {
	if !IsSupportedLanguage(sourceLang) {
		return fmt.Errorf("unsupported source language: %q (expected one of %s)",
			sourceLang, strings.Join(SupportedLanguageCodes(), ", "))
	}
	if !IsSupportedLanguage(targetLang) {
		return fmt.Errorf("unsupported target language: %q (expected one of %s)",
			targetLang, strings.Join(SupportedLanguageCodes(), ", "))
	}
	return nil
}

func normalizeLangCode(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
