package adminclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumeshkk123/cloud-sub008/internal/adminclient"
	"github.com/sumeshkk123/cloud-sub008/internal/editor"
	cmshttp "github.com/sumeshkk123/cloud-sub008/internal/http"
	"github.com/sumeshkk123/cloud-sub008/internal/icons"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/translation"
)

type requestLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		entry += "?" + r.URL.RawQuery
	}
	l.entries = append(l.entries, entry)
}

func (l *requestLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func newAdminServer(t *testing.T) (*httptest.Server, *requestLog) {
	t.Helper()
	glossary, err := translation.DefaultGlossary()
	require.NoError(t, err)

	api := cmshttp.NewAdminAPI(
		cmshttp.WithRecordService(records.NewService(records.NewMemoryRepository())),
		cmshttp.WithTranslationService(translation.NewService(translation.NewGlossaryProvider(glossary))),
		cmshttp.WithIconCatalog(icons.Default()),
	)
	mux := http.NewServeMux()
	require.NoError(t, api.Register(mux))

	log := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server, log
}

func TestControllerAgainstAdminAPI(t *testing.T) {
	server, log := newAdminServer(t)
	client, err := adminclient.New(server.URL + "/admin/api/")
	require.NoError(t, err)

	controller, err := editor.NewController(records.KindFeatures, client, editor.WithTranslator(client))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, controller.SetField("en", editor.FieldTitle, "Genealogy Tree"))
	require.NoError(t, controller.SetField("en", editor.FieldDescription, "Track every downline commission in real time."))
	require.NoError(t, controller.SetField("en", editor.FieldIcon, "lucide:Users"))
	require.NoError(t, controller.SetField("en", editor.FieldCategory, "Network"))
	require.NoError(t, controller.SetField("en", editor.FieldFeatures, []string{"E-Wallet", "Pricing"}))
	require.NoError(t, controller.Save(ctx, "en"))

	recordID := controller.RecordID()
	require.NotEmpty(t, recordID)

	require.NoError(t, controller.AutoTranslate(ctx, "es"))
	es, _ := controller.Draft("es")
	assert.Equal(t, "Árbol genealógico", es.Title)
	assert.Equal(t, "Sigue cada comisión de tu red en tiempo real.", es.Description)
	assert.Equal(t, []string{"Monedero electrónico", "Precios"}, es.Features)
	require.NoError(t, controller.Save(ctx, "es"))

	entries := log.Entries()
	assert.Equal(t, "POST /admin/api/features", entries[0])
	assert.Equal(t, "PUT /admin/api/features?id="+recordID, entries[len(entries)-1])

	reloaded, err := editor.NewController(records.KindFeatures, client)
	require.NoError(t, err)
	require.NoError(t, reloaded.LoadAll(ctx, recordID))
	assert.Equal(t, []string{"en", "es"}, reloaded.SavedLocales())
	esDraft, _ := reloaded.Draft("es")
	assert.Equal(t, "Network", esDraft.Category)
	assert.Equal(t, "lucide:Users", esDraft.Icon)

	rows, err := client.List(ctx, records.KindFeatures, "de")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "en", rows[0].Locale)

	require.NoError(t, reloaded.Delete(ctx))
	_, err = client.Translations(ctx, records.KindFeatures, recordID)
	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestServerValidationMessageReachesEditor(t *testing.T) {
	server, _ := newAdminServer(t)
	client, err := adminclient.New(server.URL + "/admin/api")
	require.NoError(t, err)

	_, err = client.Create(context.Background(), records.KindFeatures, editor.Record{Locale: "en", Title: "Only title"})
	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "MISSING_FIELDS", apiErr.Code)
	assert.Equal(t, "Missing required fields: Description, Icon, Category", apiErr.UserMessage())
}

func TestTranslateTreatsMissingTextAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"detail": "ok"})
	}))
	t.Cleanup(server.Close)

	client, err := adminclient.New(server.URL)
	require.NoError(t, err)
	_, err = client.Translate(context.Background(), "Pricing", "en", "es")
	assert.ErrorIs(t, err, adminclient.ErrMissingTranslation)
}

func TestErrorMessageFallsBackToErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"translation service down"}`))
	}))
	t.Cleanup(server.Close)

	client, err := adminclient.New(server.URL, adminclient.WithHeader("Authorization", "Bearer token"))
	require.NoError(t, err)
	_, err = client.Translate(context.Background(), "Pricing", "en", "es")

	var apiErr *adminclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "translation service down", apiErr.Message)
	assert.True(t, strings.Contains(apiErr.Error(), "502"))
}

func TestTranslationsAcceptsBareArray(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/admin/api/page-titles", r.URL.Path)
		assert.Equal(t, "page-1", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"page-1","locale":"en","page":"about-us","title":"About"}]`))
	}))
	t.Cleanup(server.Close)

	client, err := adminclient.New(server.URL+"/admin/api", adminclient.WithHeader("Authorization", "Bearer token"))
	require.NoError(t, err)
	rows, err := client.Translations(context.Background(), records.KindPageTitles, "page-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "about-us", rows[0].Page)
	assert.Equal(t, "Bearer token", auth)
}

func TestNetworkFailureUsesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := adminclient.New(url)
	require.NoError(t, err)

	var notes []editor.Notification
	controller, err := editor.NewController(records.KindFeatures, client, editor.WithNotifier(editor.NotifierFunc(func(n editor.Notification) {
		notes = append(notes, n)
	})))
	require.NoError(t, err)

	err = controller.LoadAll(context.Background(), "rec-1")
	require.Error(t, err)
	assert.True(t, editor.IsNetwork(err))
	var apiErr *adminclient.APIError
	assert.False(t, errors.As(err, &apiErr))
	require.Len(t, notes, 1)
	assert.Equal(t, "Failed to load translations. Please try again.", notes[0].Message)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := adminclient.New("  ")
	assert.ErrorIs(t, err, adminclient.ErrBaseURLRequired)
}
