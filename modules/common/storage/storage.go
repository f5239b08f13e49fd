package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"courseflow-server/modules/common/config"
	"courseflow-server/modules/common/utils"
)

const bucket = "banners"

// Client - Supabase Storage uploader for generated banner images. When the
// upload succeeds the handler returns the public URL instead of a data URL.
type Client struct{}

// NewClient - Storage 클라이언트 생성
func NewClient() *Client {
	return &Client{}
}

// UploadGeneratedImage - convert PNG bytes to WebP and upload them to the
// banners bucket. Returns the public URL of the stored object.
func (c *Client) UploadGeneratedImage(ctx context.Context, imageData []byte, kind string) (string, error) {
	cfg := config.GetConfig()

	webpData, err := utils.ConvertPNGToWebP(imageData, 90.0)
	if err != nil {
		return "", fmt.Errorf("failed to convert PNG to WebP: %w", err)
	}

	timestamp := time.Now().UnixNano() / int64(time.Millisecond)
	randomID := rand.Intn(999999)
	filePath := fmt.Sprintf("%s/%s_%d_%d.webp", kind, kind, timestamp, randomID)

	log.Printf("📤 Uploading WebP image to storage: %s", filePath)

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", cfg.SupabaseURL, bucket, filePath)

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(webpData))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+cfg.SupabaseServiceKey)
	req.Header.Set("Content-Type", "image/webp")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", cfg.SupabaseURL, bucket, filePath)
	if cfg.SupabaseStorageBaseURL != "" {
		publicURL = cfg.SupabaseStorageBaseURL + filePath
	}

	log.Printf("✅ WebP image uploaded successfully: %s (%d bytes)", filePath, len(webpData))
	return publicURL, nil
}
