package imagestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/infrastructure/imagestore"
	"github.com/jhoicas/prestamos-api/pkg/config"
)

func buildClient(t *testing.T, handler http.HandlerFunc) *imagestore.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return imagestore.New(config.ImageStoreConfig{
		CloudName: "test-cloud",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "loans",
		BaseURL:   srv.URL,
	})
}

// ── Rechazos locales: nunca deben tocar la red ────────────────────────────────

func TestStore_RechazaContentTypeNoImagen(t *testing.T) {
	called := false
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Store(context.Background(), []byte("hola"), "text/plain")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called, "el rechazo por tipo debe resolverse sin llamada HTTP")
}

func TestStore_RechazaPayloadMayorA5MiB(t *testing.T) {
	called := false
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	big := make([]byte, 5<<20+1)
	_, err := client.Store(context.Background(), big, "image/jpeg")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, called)
}

// ── Subida ────────────────────────────────────────────────────────────────────

func TestStore_SubidaExitosaDevuelveReferencia(t *testing.T) {
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1_1/test-cloud/image/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "loans", r.FormValue("folder"))
		assert.NotEmpty(t, r.FormValue("signature"))
		assert.NotEmpty(t, r.FormValue("public_id"))

		_, _, err := r.FormFile("file")
		require.NoError(t, err, "el archivo debe viajar en el campo file")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://cdn.test/loans/abc.jpg","public_id":"loans/abc"}`))
	})

	ref, err := client.Store(context.Background(), []byte("fake-jpeg"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/loans/abc.jpg", ref.URL)
	assert.Equal(t, "loans/abc", ref.PublicID)
}

func TestStore_ErrorRemotoSePropaga(t *testing.T) {
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	})

	_, err := client.Store(context.Background(), []byte("fake"), "image/png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid signature")
}

// ── Borrado ───────────────────────────────────────────────────────────────────

func TestDelete_ResultadoOK(t *testing.T) {
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1_1/test-cloud/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "loans/abc", r.FormValue("public_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"ok"}`))
	})

	err := client.Delete(context.Background(), "loans/abc")
	assert.NoError(t, err)
}

func TestDelete_NotFoundEsIdempotente(t *testing.T) {
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"not found"}`))
	})

	err := client.Delete(context.Background(), "loans/ya-borrada")
	assert.NoError(t, err, "borrar una referencia inexistente no es error")
}

func TestDelete_ResultadoDesconocidoEsError(t *testing.T) {
	client := buildClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"pending"}`))
	})

	err := client.Delete(context.Background(), "loans/abc")
	assert.Error(t, err)
}
