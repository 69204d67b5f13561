package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rmitchellscott/orangesnap/internal/imageprocessing"
	"github.com/rmitchellscott/orangesnap/internal/logging"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gemini-2.0-flash"
	maxTokens      = 300

	// Uploads above this size, or in formats vision endpoints rarely accept,
	// are downscaled and sent as JPEG.
	maxInlineBytes = 4 << 20
	maxInlineSide  = 2048
	inlineQuality  = 85
)

// ModelExtractor asks an OpenAI-compatible chat completions endpoint to
// describe the image's colors.
type ModelExtractor struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Client  *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (m *ModelExtractor) Name() string { return "model" }

func (m *ModelExtractor) Check() error {
	if strings.TrimSpace(m.APIKey) == "" {
		return ErrMissingCredential
	}
	return nil
}

// Extract sends the image as a data URL and parses the answer for t.
func (m *ModelExtractor) Extract(ctx context.Context, img Image, t Type) (Palette, error) {
	if err := m.Check(); err != nil {
		return Palette{}, err
	}
	if len(img.Data) == 0 {
		return Palette{}, ErrMissingImage
	}

	img, err := prepareUpload(img)
	if err != nil {
		return Palette{}, err
	}

	content, err := m.complete(ctx, systemPrompt(t), dataURL(img))
	if err != nil {
		return Palette{}, err
	}

	p := Palette{Type: t, Source: m.Name(), Model: m.model()}
	if t == TypeGradient {
		p.Gradients, err = ParseGradient(content)
	} else {
		p.Colors, err = ParseSolid(content)
	}
	if err != nil {
		logging.WarnWithComponent(logging.ComponentExtraction, "Could not parse model answer", "type", t, "model", p.Model)
		return Palette{}, err
	}
	return p, nil
}

func (m *ModelExtractor) complete(ctx context.Context, prompt, imageDataURL string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: m.model(),
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: []contentPart{{Type: "image_url", ImageURL: &imageURL{URL: imageDataURL}}}},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode model request: %w", err)
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	endpoint := strings.TrimRight(m.baseURL(), "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("model request failed: HTTP %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode model response: %w", decodeErr)
	}

	logging.DebugWithComponent(logging.ComponentExtraction, "Model answered",
		"model", m.model(), "status", resp.StatusCode, "duration", time.Since(start))

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

func (m *ModelExtractor) model() string {
	if m.Model == "" {
		return DefaultModel
	}
	return m.Model
}

func (m *ModelExtractor) baseURL() string {
	if m.BaseURL == "" {
		return DefaultBaseURL
	}
	return m.BaseURL
}

func prepareUpload(img Image) (Image, error) {
	mime := sniff(img)
	switch mime {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		if len(img.Data) <= maxInlineBytes {
			return Image{Data: img.Data, ContentType: mime}, nil
		}
	}

	decoded, _, err := imageprocessing.DecodeBytes(img.Data)
	if err != nil {
		return Image{}, err
	}
	data, err := imageprocessing.EncodeJPEG(imageprocessing.ResizeToFit(decoded, maxInlineSide), inlineQuality)
	if err != nil {
		return Image{}, err
	}
	logging.DebugWithComponent(logging.ComponentExtraction, "Re-encoded upload", "from", mime, "bytes", len(img.Data), "jpeg_bytes", len(data))
	return Image{Data: data, ContentType: "image/jpeg"}, nil
}

func sniff(img Image) string {
	if img.ContentType == "" || img.ContentType == "application/octet-stream" {
		return http.DetectContentType(img.Data)
	}
	return img.ContentType
}

// dataURL embeds the upload as data:<mime>;base64,<bytes>, sniffing the type
// when the client did not send one.
func dataURL(img Image) string {
	return "data:" + sniff(img) + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
