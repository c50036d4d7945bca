package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	"image/png"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"

	"atelier-studio-server/modules/common/config"
)

// Client persists generated images to Supabase Storage. A nil Client (or a
// Client without Supabase configured) degrades to passing provider URLs
// through untouched.
type Client struct {
	supabase *supabase.Client
	bucket   string
}

// NewClient builds the storage client, or nil when Supabase is not configured.
func NewClient() *Client {
	cfg := config.GetConfig()
	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		return nil
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Storage] Failed to create Supabase client: %v", err)
		return nil
	}

	return &Client{
		supabase: supabaseClient,
		bucket:   cfg.SupabaseStorageBucket,
	}
}

// PersistURL downloads a generated image from the provider, re-encodes it to
// WebP, and uploads it to Supabase Storage. On any failure it returns the
// original provider URL so a generation never fails over persistence.
func (c *Client) PersistURL(ctx context.Context, sourceURL, folder string) string {
	if c == nil || sourceURL == "" {
		return sourceURL
	}

	stored, err := c.persist(ctx, sourceURL, folder)
	if err != nil {
		log.Printf("⚠️ [Storage] Persistence failed, keeping provider URL: %v", err)
		return sourceURL
	}
	return stored
}

func (c *Client) persist(ctx context.Context, sourceURL, folder string) (string, error) {
	imageData, err := download(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	webpData, err := ConvertToWebP(imageData, 90.0)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().UnixNano() / int64(time.Millisecond)
	fileName := fmt.Sprintf("generated_%d_%d.webp", timestamp, rand.Intn(999999))
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	log.Printf("📤 [Storage] Uploading WebP image: %s (%d bytes)", filePath, len(webpData))

	contentType := "image/webp"
	_, err = c.supabase.Storage.UploadFile(c.bucket, filePath, bytes.NewReader(webpData), storage_go.FileOptions{ContentType: &contentType})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	publicURL := c.supabase.Storage.GetPublicUrl(c.bucket, filePath).SignedURL
	log.Printf("✅ [Storage] Image persisted: %s", publicURL)
	return publicURL, nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// ConvertToWebP re-encodes a PNG/JPEG binary as lossy WebP.
func ConvertToWebP(data []byte, quality float32) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Some providers report png but emit raw PNG with extras; retry strict.
		img, err = png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		format = "png"
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	log.Printf("🔄 [Storage] %s converted to WebP: %d bytes → %d bytes",
		format, len(data), webpBuffer.Len())

	return webpBuffer.Bytes(), nil
}
