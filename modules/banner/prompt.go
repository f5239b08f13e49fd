package banner

import (
	"fmt"
	"strings"

	"courseflow-server/modules/course"
)

// Phrase tables for the enumerated design preferences. Every category keeps a
// default phrase so an unrecognized value can never produce an empty section.

var visualStyles = map[string]string{
	"photorealistic": "photorealistic photography with crisp, high-detail rendering",
	"illustration":   "hand-drawn editorial illustration with confident linework",
	"3d-render":      "polished 3D render with soft global illumination",
	"watercolor":     "loose watercolor painting with layered translucent washes",
	"flat-design":    "flat vector design with bold geometric shapes",
	"cinematic":      "cinematic film still with shallow depth of field",
}

var compositionRules = map[string]string{
	"rule-of-thirds": "subject anchored on rule-of-thirds intersections",
	"centered":       "symmetrical centered composition with balanced margins",
	"golden-ratio":   "golden-ratio spiral guiding the visual flow",
	"diagonal":       "strong diagonal leading lines across the frame",
	"negative-space": "generous negative space around a single focal subject",
}

var lightingMoods = map[string]string{
	"golden-hour": "warm golden-hour sunlight with long soft shadows",
	"studio":      "even studio softbox lighting with gentle falloff",
	"dramatic":    "dramatic low-key lighting with strong rim highlights",
	"soft":        "soft diffused daylight with airy highlights",
	"neon":        "moody neon glow with saturated accent lights",
}

var colorMoods = map[string]string{
	"vibrant":    "vibrant saturated colors with energetic contrast",
	"pastel":     "muted pastel tones with creamy transitions",
	"monochrome": "restrained monochrome palette with tonal depth",
	"earthy":     "earthy natural tones of clay, sand and moss",
	"jewel":      "rich jewel tones with deep luminous accents",
}

var aestheticStyles = map[string]string{
	"modern":   "modern professional",
	"minimal":  "minimalist and uncluttered",
	"playful":  "playful and energetic",
	"elegant":  "elegant and refined",
	"tech":     "high-tech and futuristic",
	"academic": "classic academic",
}

var colorPalettes = map[string]string{
	"warm":    "warm sunset tones",
	"cool":    "cool blue and teal tones",
	"neutral": "neutral greys with a single accent color",
	"brand":   "brand-led color blocking",
	"pastel":  "soft pastel wash",
}

var lightingAtmospheres = map[string]string{
	"bright": "bright and inviting",
	"moody":  "moody and intimate",
	"airy":   "airy and open",
	"dark":   "dark and focused",
}

// Default phrases used on a table miss.
const (
	defaultVisualStyle     = "photorealistic photography with crisp, high-detail rendering"
	defaultComposition     = "balanced composition with clear focal hierarchy"
	defaultLightingMood    = "bright, even lighting with natural falloff"
	defaultColorMood       = "confident professional palette with controlled contrast"
	defaultAestheticStyle  = "modern professional"
	defaultColorPalette    = "professional colors"
	defaultLightingAtmos   = "bright and inviting"
	defaultCallToAction    = "Sign Up Now"
	fragmentSeparator      = " • "
	maxLogoPlacements      = 4
	maxContextLength       = 100
)

// Fixed placement/style descriptors for attached logos, by position index.
var logoPlacements = [maxLogoPlacements]string{
	"top right corner, sized small but clearly visible",
	"top left corner, balancing the primary logo",
	"bottom left corner, subtle and unobtrusive",
	"bottom right corner, aligned with the CTA band",
}

func lookupPhrase(table map[string]string, key, fallback string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if phrase, ok := table[key]; ok {
		return phrase
	}
	return fallback
}

// scheduleLine joins the course detail fragments with a bullet separator,
// omitting any that are empty.
func scheduleLine(d course.Details) string {
	dayTime := strings.TrimSpace(strings.TrimSpace(d.Schedule.Days) + " " + strings.TrimSpace(d.Schedule.TimeRange))

	var fragments []string
	for _, f := range []string{d.Schedule.Dates, dayTime, d.Location, d.Duration} {
		if f = strings.TrimSpace(f); f != "" {
			fragments = append(fragments, f)
		}
	}
	return strings.Join(fragments, fragmentSeparator)
}

// truncate limits s to maxLen characters. Counting runes, not bytes, keeps
// multi-byte text (Hebrew titles and descriptions) from being cut mid-rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// writeArtDirection emits the shared [ART DIRECTION] block used by both the
// banner and the background prompt.
func writeArtDirection(b *strings.Builder, p course.DesignPreferences) {
	b.WriteString("[ART DIRECTION]\n")
	b.WriteString("- Visual style: " + lookupPhrase(visualStyles, p.VisualStyle, defaultVisualStyle) + "\n")
	b.WriteString("- Aesthetic: " + lookupPhrase(aestheticStyles, p.AestheticStyle, defaultAestheticStyle) + "\n")
	b.WriteString("- Composition: " + lookupPhrase(compositionRules, p.CompositionRule, defaultComposition) + "\n")
	b.WriteString("- Lighting: " + lookupPhrase(lightingMoods, p.LightingMood, defaultLightingMood) + "\n")
	b.WriteString("- Atmosphere: " + lookupPhrase(lightingAtmospheres, p.LightingAndAtmosphere, defaultLightingAtmos) + "\n")
	b.WriteString("- Color mood: " + lookupPhrase(colorMoods, p.ColorMood, defaultColorMood) + "\n")
	b.WriteString("- Color scheme: " + lookupPhrase(colorPalettes, p.ColorPalette, defaultColorPalette) + "\n")
	b.WriteString("\n")
}

func writeTechnicalSpecs(b *strings.Builder) {
	b.WriteString("[TECHNICAL SPECS]\n")
	b.WriteString("- 16:9 aspect ratio (1200x675)\n")
	b.WriteString("- high resolution, sharp edges, no watermarks\n")
	b.WriteString("- full-bleed image: no borders, bars or letterboxing\n")
	b.WriteString("\n")
}

func writeLogoIntegration(b *strings.Builder, logoCount int) {
	if logoCount <= 0 {
		return
	}
	if logoCount > maxLogoPlacements {
		logoCount = maxLogoPlacements
	}

	b.WriteString("[LOGO INTEGRATION]\n")
	for i := 0; i < logoCount; i++ {
		b.WriteString(fmt.Sprintf("- Logo %d: place in the %s\n", i+1, logoPlacements[i]))
	}
	b.WriteString("- ensure good contrast - add a subtle light backing behind each logo if needed\n")
	b.WriteString("- logos must look naturally integrated into the design, never pasted on\n")
	b.WriteString("\n")
}

// BuildBannerPrompt assembles the prompt for the banner image (course text
// baked into the artwork). Pure string assembly, no error conditions.
func BuildBannerPrompt(d course.Details, p course.DesignPreferences, logoCount int) string {
	var b strings.Builder
	b.Grow(2048)

	b.WriteString("Create a premium, modern 16:9 course banner advertisement.\n\n")
	b.WriteString("Topic: " + d.Title + "\n")
	if context := strings.TrimSpace(d.Description); context != "" {
		b.WriteString("Context: " + truncate(context, maxContextLength) + "\n")
	}
	if audience := strings.TrimSpace(d.TargetAudience); audience != "" {
		b.WriteString("Audience: " + audience + "\n")
	}
	b.WriteString("\n")

	writeArtDirection(&b, p)

	b.WriteString("[CONTENT ELEMENTS]\n")
	b.WriteString(fmt.Sprintf("- Big title (upper center): \"%s\"\n", d.Title))
	if subtitle := strings.TrimSpace(d.Subtitle); subtitle != "" {
		b.WriteString(fmt.Sprintf("- Subtitle under it: \"%s\"\n", subtitle))
	}
	if info := scheduleLine(d); info != "" {
		b.WriteString("- One slim rounded info bar (single row) containing: " + info + "\n")
	}
	b.WriteString(fmt.Sprintf("- CTA button centered in the bottom band: \"%s\"\n", defaultCallToAction))
	b.WriteString("\n")

	b.WriteString("[TYPOGRAPHY]\n")
	b.WriteString("- excellent typography, clear hierarchy, perfect alignment\n")
	b.WriteString("- readable text (no broken letters), high contrast\n")
	b.WriteString("- Hebrew text must render as correct, native-looking RTL\n")
	b.WriteString("\n")

	writeTechnicalSpecs(&b)

	b.WriteString("[INTEGRATION RULES]\n")
	b.WriteString("- keep generous safe margins around all text\n")
	b.WriteString("- leave the BOTTOM 15% as a darker gradient band anchoring the CTA\n")
	b.WriteString("- no clutter; everything aligned and balanced\n")
	b.WriteString("\n")

	writeLogoIntegration(&b, logoCount)

	return strings.TrimSpace(b.String())
}

// BuildBackgroundPrompt assembles the prompt for the text-free background
// image used as the landing page hero backdrop.
func BuildBackgroundPrompt(d course.Details, p course.DesignPreferences) string {
	var b strings.Builder
	b.Grow(1536)

	b.WriteString("Create a professional course banner background image.\n\n")
	b.WriteString("Topic: " + d.Title + "\n")
	if context := strings.TrimSpace(d.Description); context != "" {
		b.WriteString("Context: " + truncate(context, maxContextLength) + "\n")
	}
	b.WriteString("\n")

	writeArtDirection(&b, p)

	b.WriteString("[CONTENT ELEMENTS]\n")
	b.WriteString("- beautiful, relevant imagery that represents the course topic\n")
	b.WriteString("- Do NOT include any text, letters or numbers anywhere in the image\n")
	b.WriteString("- leave space in the upper area for a title overlay (added later)\n")
	b.WriteString("\n")

	writeTechnicalSpecs(&b)

	b.WriteString("[INTEGRATION RULES]\n")
	b.WriteString("- leave the BOTTOM 15% with a darker gradient area for a CTA overlay\n")
	b.WriteString("- keep the center region calm and low-detail so overlaid text stays readable\n")
	b.WriteString("- professional marketing aesthetic\n")

	return strings.TrimSpace(b.String())
}
