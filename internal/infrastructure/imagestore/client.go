// Package imagestore implementa el puerto ImageStore contra un servicio de
// imágenes tipo Cloudinary (subida multipart firmada, borrado por public_id).
package imagestore

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/prestamos-api/internal/application/ports"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	"github.com/jhoicas/prestamos-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa ImageStore.
var _ ports.ImageStore = (*Client)(nil)

const (
	defaultBaseURL = "https://api.cloudinary.com"

	// maxImageBytes techo de 5 MiB para la subida (igual que el frontend).
	maxImageBytes = 5 << 20
)

// Client adaptador HTTP del servicio de imágenes.
// Usa net/http de la librería estándar; no requiere SDK oficial.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. Si cfg.CloudName está vacío las llamadas devuelven
// error descriptivo en lugar de panic.
func New(cfg config.ImageStoreConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		baseURL:   strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			// La subida puede ser larga comparada con el resto de la petición.
			Timeout: 30 * time.Second,
		},
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"` // "ok" | "not found"
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Store sube la imagen y devuelve su referencia durable (URL + public_id).
// Rechaza content types que no sean image/* y payloads de más de 5 MiB sin
// tocar la red; esos rechazos se marcan con domain.ErrInvalidInput.
func (c *Client) Store(ctx context.Context, data []byte, contentType string) (*entity.ImageRef, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed (got %q)", domain.ErrInvalidInput, contentType)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds the 5 MiB limit", domain.ErrInvalidInput)
	}
	if c.cloudName == "" {
		return nil, fmt.Errorf("image store no configurado: falta IMAGE_CLOUD_NAME")
	}

	publicID := fmt.Sprintf("loan_%d_%s", time.Now().UnixMilli(), randomSuffix())
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	// Firma SHA-1 sobre los parámetros ordenados alfabéticamente + secret.
	signature := c.sign(fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s", c.folder, publicID, timestamp))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, val := range map[string]string{
		"api_key":   c.apiKey,
		"timestamp": timestamp,
		"folder":    c.folder,
		"public_id": publicID,
		"signature": signature,
	} {
		if err := w.WriteField(key, val); err != nil {
			return nil, fmt.Errorf("imagestore: armar formulario: %w", err)
		}
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("imagestore: armar formulario: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("imagestore: armar formulario: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("imagestore: armar formulario: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("imagestore: crear request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagestore: subir imagen: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imagestore: leer respuesta: %w", err)
	}
	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("imagestore: respuesta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || out.Error != nil {
		msg := "error desconocido"
		if out.Error != nil {
			msg = out.Error.Message
		}
		return nil, fmt.Errorf("imagestore: subida rechazada (HTTP %d): %s", resp.StatusCode, msg)
	}
	return &entity.ImageRef{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// Delete borra la imagen por public_id. Es idempotente: "not found" cuenta
// como éxito, para que los reintentos de limpieza nunca fallen de más.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	if c.cloudName == "" {
		return fmt.Errorf("image store no configurado: falta IMAGE_CLOUD_NAME")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := c.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp))

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.apiKey)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("imagestore: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("imagestore: borrar imagen: %w", err)
	}
	defer resp.Body.Close()

	var out destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("imagestore: respuesta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return fmt.Errorf("imagestore: borrado rechazado: %s", out.Error.Message)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("imagestore: borrado rechazado: %q", out.Result)
	}
	return nil
}

func (c *Client) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func randomSuffix() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b[:])
}
