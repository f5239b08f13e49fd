package banner

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"courseflow-server/modules/common/config"
	"courseflow-server/modules/common/storage"
	"courseflow-server/modules/common/utils"
	"courseflow-server/modules/postprocess"
)

type Service struct {
	genaiClient *genai.Client
	storage     *storage.Client
}

// generatedImage - one raw image returned by the model.
type generatedImage struct {
	data     []byte
	mimeType string
}

func NewService() *Service {
	cfg := config.GetConfig()

	if cfg.GeminiAPIKey == "" {
		log.Println("❌ [Banner] GEMINI_API_KEY is not configured")
		return nil
	}

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ [Banner] Failed to create Genai client: %v", err)
		return nil
	}

	log.Println("✅ [Banner] Service initialized")
	return &Service{
		genaiClient: genaiClient,
		storage:     storage.NewClient(),
	}
}

// generateImage - one Gemini call. Logos are attached as inline parts before
// the prompt text. The provider rejects image-only requests, so both TEXT and
// IMAGE modalities are requested.
func (s *Service) generateImage(ctx context.Context, prompt string, logos []generatedImage) (*generatedImage, error) {
	cfg := config.GetConfig()

	var parts []*genai.Part
	for _, logo := range logos {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: logo.mimeType,
				Data:     logo.data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	content := &genai.Content{
		Parts: parts,
	}

	log.Printf("📤 [Banner] Sending request to Gemini API (model: %s, parts: %d, prompt: %d chars)",
		cfg.GeminiModel, len(parts), len(prompt))
	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		cfg.GeminiModel,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig: &genai.ImageConfig{
				AspectRatio: "16:9",
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Banner] Received image from Gemini: %d bytes", len(part.InlineData.Data))
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &generatedImage{data: part.InlineData.Data, mimeType: mimeType}, nil
			}
		}
	}

	return nil, fmt.Errorf("no image returned from model %s", cfg.GeminiModel)
}

// decodeLogos - decode up to 4 logo data URLs into inline parts.
func decodeLogos(logoImages []string) []generatedImage {
	var logos []generatedImage
	for i, raw := range logoImages {
		if len(logos) >= maxLogoPlacements {
			break
		}
		data, mimeType, err := utils.DecodeDataURL(strings.TrimSpace(raw))
		if err != nil {
			log.Printf("⚠️ [Banner] Failed to decode logo %d: %v", i+1, err)
			continue
		}
		logos = append(logos, generatedImage{data: data, mimeType: mimeType})
	}
	return logos
}

// finalizeAsset - return a public storage URL when Supabase uploads are
// configured, falling back to a data URL on any upload failure.
func (s *Service) finalizeAsset(ctx context.Context, img *generatedImage, kind string) string {
	cfg := config.GetConfig()

	if cfg.HasSupabase() && img.mimeType == "image/png" {
		url, err := s.storage.UploadGeneratedImage(ctx, img.data, kind)
		if err == nil {
			return url
		}
		log.Printf("⚠️ [Banner] Storage upload failed for %s, falling back to data URL: %v", kind, err)
	}

	return utils.EncodeDataURL(img.mimeType, img.data)
}

// GenerateBannerSet - generate the banner (text baked in) and the clean
// background in parallel. Both calls must succeed or the whole operation
// fails; there are no retries.
func (s *Service) GenerateBannerSet(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	logos := decodeLogos(req.LogoImages)

	prompts := [2]string{
		BuildBannerPrompt(req.CourseDetails, req.DesignPreferences, len(logos)),
		BuildBackgroundPrompt(req.CourseDetails, req.DesignPreferences),
	}
	// Logos are integrated into the banner only; the background stays clean.
	logoSets := [2][]generatedImage{logos, nil}

	log.Printf("🎨 [Banner] Generating banner set for %q (logos: %d)",
		truncateString(req.CourseDetails.Title, 40), len(logos))

	var wg sync.WaitGroup
	var images [2]*generatedImage
	var errs [2]error

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			images[i], errs[i] = s.generateImage(ctx, prompts[i], logoSets[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	colors := postprocess.ExtractColors(images[0].data)
	if req.Branding.PrimaryColor != "" {
		colors.Primary = req.Branding.PrimaryColor
	}
	if req.Branding.AccentColor != "" {
		colors.Accent = req.Branding.AccentColor
	}

	response := &GenerateResponse{
		Success:     true,
		Banner:      s.finalizeAsset(ctx, images[0], "banner"),
		Background:  s.finalizeAsset(ctx, images[1], "background"),
		Colors:      &colors,
		GeneratedAt: time.Now().UTC(),
	}

	log.Printf("✅ [Banner] Banner set generated (primary: %s, accent: %s)",
		colors.Primary, colors.Accent)
	return response, nil
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
