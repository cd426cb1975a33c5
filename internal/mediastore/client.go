package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clipstream/backend/internal/config"
)

// AssetKind distinguishes the two upload endpoints exposed by the media
// provider. The kind cannot always be inferred from a handle, so deletion
// requires it explicitly.
type AssetKind string

const (
	KindVideo AssetKind = "video"
	KindImage AssetKind = "image"
)

// Asset is a durable remote resource: an opaque handle plus its canonical
// delivery URL. It exists from a successful upload until an explicit destroy.
type Asset struct {
	PublicID string
	URL      string
	Kind     AssetKind
}

// UploadOutcome bundles the created asset with the moderation side-channel
// payload returned on the same call. ScoresAvailable is false when the
// provider's moderation add-on did not produce a result; callers must treat
// that as "needs human review", never as a clean pass.
type UploadOutcome struct {
	Asset           Asset
	Scores          map[string]float64
	ScoresAvailable bool
}

// moderationKind selects the provider's moderation add-on on upload.
const moderationKind = "aws_rek"

// Client talks to the media provider's upload API with the moderation
// side-channel enabled. It carries no per-request state and is safe for
// concurrent use across independent pipeline runs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	timeout    time.Duration
	logger     *slog.Logger

	// NowFunc lets tests pin the signature timestamp.
	NowFunc func() time.Time
}

// NewClient validates the provider credentials and constructs a client.
func NewClient(cfg config.MediaStoreConfig, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, fmt.Errorf("media store: cloud name is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, fmt.Errorf("media store: api credentials are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

type uploadResponse struct {
	PublicID   string             `json:"public_id"`
	SecureURL  string             `json:"secure_url"`
	Duration   float64            `json:"duration"`
	Moderation []moderationResult `json:"moderation"`
}

type moderationResult struct {
	Status   string              `json:"status"`
	Response *moderationResponse `json:"response"`
}

type moderationResponse struct {
	ModerationLabels []moderationLabel `json:"moderation_labels"`
}

type moderationLabel struct {
	Name string `json:"name"`
	// Confidence arrives on a 0-100 scale at the wire level.
	Confidence float64 `json:"confidence"`
}

// Upload transmits the local file with moderation enabled and returns the
// created asset plus the side-channel scores. The local temp file is removed
// after a successful upload, and best-effort after a failed one; either way
// the caller no longer owns it.
func (c *Client) Upload(ctx context.Context, localPath string, kind AssetKind) (UploadOutcome, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outcome, err := c.upload(reqCtx, localPath, kind)
	if removeErr := RemoveLocal(localPath); removeErr != nil {
		c.logger.Warn("remove local upload file", "path", localPath, "error", removeErr)
	}
	if err != nil {
		return UploadOutcome{}, err
	}

	return outcome, nil
}

func (c *Client) upload(ctx context.Context, localPath string, kind AssetKind) (UploadOutcome, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return UploadOutcome{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	timestamp := c.now().Unix()
	params := map[string]string{
		"moderation": moderationKind,
		"timestamp":  strconv.FormatInt(timestamp, 10),
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range params {
		if err := writer.WriteField(name, value); err != nil {
			return UploadOutcome{}, fmt.Errorf("write upload field %s: %w", name, err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return UploadOutcome{}, fmt.Errorf("write upload field api_key: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return UploadOutcome{}, fmt.Errorf("write upload field signature: %w", err)
	}

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return UploadOutcome{}, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return UploadOutcome{}, fmt.Errorf("copy upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadOutcome{}, fmt.Errorf("finalize upload body: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/%s/upload", c.baseURL, c.cloudName, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return UploadOutcome{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadOutcome{}, fmt.Errorf("media store upload %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return UploadOutcome{}, fmt.Errorf("media store upload %s: unexpected status %d: %s", kind, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return UploadOutcome{}, fmt.Errorf("parse upload response: %w", err)
	}
	if payload.PublicID == "" || payload.SecureURL == "" {
		return UploadOutcome{}, fmt.Errorf("media store upload %s: response missing asset identifiers", kind)
	}

	outcome := UploadOutcome{
		Asset: Asset{
			PublicID: payload.PublicID,
			URL:      payload.SecureURL,
			Kind:     kind,
		},
	}

	if len(payload.Moderation) > 0 && payload.Moderation[0].Response != nil {
		outcome.ScoresAvailable = true
		outcome.Scores = make(map[string]float64, len(payload.Moderation[0].Response.ModerationLabels))
		for _, label := range payload.Moderation[0].Response.ModerationLabels {
			outcome.Scores[label.Name] = label.Confidence / 100
		}
	}

	return outcome, nil
}

// Delete destroys the remote asset. It is best-effort compensating cleanup:
// failures are logged and swallowed so they never mask the error that
// triggered the deletion.
func (c *Client) Delete(ctx context.Context, asset Asset) {
	if asset.PublicID == "" {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	timestamp := c.now().Unix()
	params := map[string]string{
		"public_id": asset.PublicID,
		"timestamp": strconv.FormatInt(timestamp, 10),
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range params {
		if err := writer.WriteField(name, value); err != nil {
			c.logger.Error("media store destroy request", "publicId", asset.PublicID, "error", err)
			return
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		c.logger.Error("media store destroy request", "publicId", asset.PublicID, "error", err)
		return
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		c.logger.Error("media store destroy request", "publicId", asset.PublicID, "error", err)
		return
	}
	if err := writer.Close(); err != nil {
		c.logger.Error("media store destroy request", "publicId", asset.PublicID, "error", err)
		return
	}

	url := fmt.Sprintf("%s/v1_1/%s/%s/destroy", c.baseURL, c.cloudName, asset.Kind)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, &body)
	if err != nil {
		c.logger.Error("media store destroy request", "publicId", asset.PublicID, "error", err)
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("media store destroy", "publicId", asset.PublicID, "kind", asset.Kind, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("media store destroy", "publicId", asset.PublicID, "kind", asset.Kind, "status", resp.StatusCode)
	}
}

// sign produces the provider's request signature: the request parameters in
// lexical order, concatenated with the API secret, hashed with SHA-1.
func (c *Client) sign(params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, params[name]))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc()
	}
	return time.Now().UTC()
}
