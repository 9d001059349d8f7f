package model

import (
	"encoding/json"
	"strings"
)

// Theme categorizes an evidence nugget
type Theme string

const (
	ThemeWorkflow     Theme = "workflow"
	ThemeEditing      Theme = "editing"
	ThemeStock        Theme = "stock"
	ThemeVoice        Theme = "voice"
	ThemeExport       Theme = "export"
	ThemeAvatar       Theme = "avatar"
	ThemeTeam         Theme = "team"
	ThemeUsage        Theme = "usage"
	ThemePricing      Theme = "pricing"
	ThemeLicensing    Theme = "licensing"
	ThemeModels       Theme = "models"
	ThemeIntegrations Theme = "integrations"
	ThemeSecurity     Theme = "security"
	ThemeSupport      Theme = "support"
	ThemeGeneral      Theme = "general"
)

// Confidence levels for evidence nuggets
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Nugget is a short factual claim about a tool, sourced from external research
type Nugget struct {
	Text          string   `json:"text"`
	Theme         Theme    `json:"theme"`
	SourceURL     string   `json:"sourceUrl,omitempty"`
	SourceType    string   `json:"sourceType,omitempty"`
	CapturedAt    string   `json:"capturedAt,omitempty"`
	HasNumber     bool     `json:"hasNumber"`
	Keywords      []string `json:"keywords,omitempty"`
	Confidence    string   `json:"confidence,omitempty"`
	ConflictGroup string   `json:"conflictGroup,omitempty"` // Groups mutually-contradictory nuggets
}

// Sources maps source page types to their canonical URLs
type Sources struct {
	Pricing  string   `json:"pricing,omitempty"`
	Features string   `json:"features,omitempty"`
	Help     string   `json:"help,omitempty"`
	FAQ      string   `json:"faq,omitempty"`
	Terms    string   `json:"terms,omitempty"`
	Docs     string   `json:"docs,omitempty"`
	Examples []string `json:"examples,omitempty"`
}

// Metadata summarizes a normalized evidence record
type Metadata struct {
	TotalNuggets  int     `json:"totalNuggets"`
	ThemesCovered []Theme `json:"themesCovered,omitempty"`
	MinConfidence string  `json:"minConfidence"`
}

// Evidence is the canonical per-tool evidence record after normalization
type Evidence struct {
	Slug        string   `json:"slug"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Sources     Sources  `json:"sources"`
	Nuggets     []Nugget `json:"nuggets"`
	Metadata    Metadata `json:"metadata"`
}

// RawNugget is an evidence nugget as scraped, before normalization
type RawNugget struct {
	Text          string `json:"text"`
	Theme         string `json:"theme,omitempty"`
	SourceURL     string `json:"sourceUrl,omitempty"`
	PageURL       string `json:"pageUrl,omitempty"`
	SourceType    string `json:"sourceType,omitempty"`
	CapturedAt    string `json:"capturedAt,omitempty"`
	Confidence    string `json:"confidence,omitempty"`
	Note          string `json:"note,omitempty"`
	ConflictGroup string `json:"conflictGroup,omitempty"`
}

// RawFactSource is one source reference attached to a hard fact
type RawFactSource struct {
	URL   string `json:"url,omitempty"`
	Type  string `json:"type,omitempty"`
	Quote string `json:"quote,omitempty"`
}

// RawHardFact is the field/value evidence shape some dossiers use instead of nuggets
type RawHardFact struct {
	Field   string          `json:"field"`
	Value   string          `json:"value"`
	Sources []RawFactSource `json:"sources,omitempty"`
}

// RawPageEvidence is the per-page evidence shape (nuggets grouped by source page)
type RawPageEvidence struct {
	Slug       string      `json:"slug,omitempty"`
	SourceType string      `json:"sourceType,omitempty"`
	PageURL    string      `json:"pageUrl,omitempty"`
	CapturedAt string      `json:"capturedAt,omitempty"`
	Nuggets    []RawNugget `json:"nuggets,omitempty"`
}

// RawLinkIndex carries slug/timestamp/source hints in the page-evidence shape
type RawLinkIndex struct {
	Slug        string   `json:"slug,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	PageURL     string   `json:"pageUrl,omitempty"`
	CapturedAt  string   `json:"capturedAt,omitempty"`
	FeatureURLs []string `json:"featureUrls,omitempty"`
}

// RawSources accepts either a single URL string or a list per source type
type RawSources map[string]StringList

// RawEvidence is a scraped evidence file in any of the supported dossier shapes
type RawEvidence struct {
	Slug         string            `json:"slug,omitempty"`
	Tool         string            `json:"tool,omitempty"`        // Alternate slug field
	LastUpdated  string            `json:"lastUpdated,omitempty"`
	CollectedAt  string            `json:"collectedAt,omitempty"` // Alternate timestamp field
	Sources      RawSources        `json:"sources,omitempty"`
	Nuggets      []RawNugget       `json:"nuggets,omitempty"`
	HardFacts    []RawHardFact     `json:"hardFacts,omitempty"`
	LinkIndex    *RawLinkIndex     `json:"linkIndex,omitempty"`
	PageEvidence []RawPageEvidence `json:"pageEvidence,omitempty"`
}

// StringList unmarshals from either a JSON string or an array of strings
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// LinkRef is an evidence link that may arrive as a bare string or as an
// object carrying a url or href field.
type LinkRef struct {
	URL string
}

// UnmarshalJSON implements json.Unmarshaler
func (l *LinkRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.URL = strings.TrimSpace(s)
		return nil
	}
	var obj struct {
		URL  string `json:"url"`
		Href string `json:"href"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.URL != "" {
		l.URL = strings.TrimSpace(obj.URL)
	} else {
		l.URL = strings.TrimSpace(obj.Href)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (l LinkRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.URL)
}
