package course

// Schedule - formatted schedule strings straight from the wizard form.
type Schedule struct {
	Dates     string `json:"dates"`     // e.g. "14.1–20.4"
	Days      string `json:"days"`      // e.g. "Thursdays"
	TimeRange string `json:"timeRange"` // e.g. "18:00–20:00"
}

// Details - step-1 course form payload. All free text, validated only as
// non-empty at submission time.
type Details struct {
	Title          string   `json:"title"`
	Subtitle       string   `json:"subtitle"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	TargetAudience string   `json:"targetAudience"`
	Schedule       Schedule `json:"schedule"`
	Location       string   `json:"location"`
}

// DesignPreferences - enumerated aesthetic parameters. Each value is mapped
// through a static phrase table in the banner module; unknown values fall back
// to a default phrase.
type DesignPreferences struct {
	AestheticStyle        string `json:"aestheticStyle"`
	ColorPalette          string `json:"colorPalette"`
	LightingAndAtmosphere string `json:"lightingAndAtmosphere"`
	VisualStyle           string `json:"visualStyle"`
	CompositionRule       string `json:"compositionRule"`
	LightingMood          string `json:"lightingMood"`
	ColorMood             string `json:"colorMood"`
}

// Logo - one entry of the logo library.
type Logo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Branding - up to 4 logos plus an optional explicit color pair that
// overrides the colors extracted from the generated banner.
type Branding struct {
	Logos        []Logo `json:"logos"`
	PrimaryColor string `json:"primaryColor,omitempty"`
	AccentColor  string `json:"accentColor,omitempty"`
}

// GeneratedAssets - the two generated images. Each is either a data URL or an
// external URL (Supabase Storage public URL when uploads are configured).
type GeneratedAssets struct {
	Banner     string `json:"banner"`     // text baked in
	Background string `json:"background"` // clean hero backdrop, no text
}

// Theme - color/font theme persisted with the landing record.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
	Font         string `json:"font,omitempty"`
}

// LandingConfig - step-2 landing page configuration.
type LandingConfig struct {
	ExtendedDescription string   `json:"extendedDescription"`
	RequiresInterview   bool     `json:"requiresInterview"`
	ReferralSources     []string `json:"referralSources"`
}
