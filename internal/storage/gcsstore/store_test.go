package gcsstore

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

const testBucket = "deal-ledger"

// fakeGCS serves the two calls the store makes: XML media reads on
// /{bucket}/{object} and JSON multipart uploads on
// /upload/storage/v1/b/{bucket}/o.
type fakeGCS struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeGCS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/upload/storage/v1/b/"+testBucket+"/o":
		f.upload(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/"+testBucket+"/"):
		f.download(w, strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/"))
	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusNotImplemented)
	}
}

func (f *fakeGCS) upload(w http.ResponseWriter, r *http.Request) {
	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reader := multipart.NewReader(r.Body, params["boundary"])

	metaPart, err := reader.NextPart()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var meta struct {
		Name        string `json:"name"`
		ContentType string `json:"contentType"`
	}
	if err = json.NewDecoder(metaPart).Decode(&meta); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mediaPart, err := reader.NextPart()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(mediaPart)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.objects[meta.Name] = data
	f.types[meta.Name] = meta.ContentType
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"bucket":      testBucket,
		"name":        meta.Name,
		"contentType": meta.ContentType,
	})
}

func (f *fakeGCS) download(w http.ResponseWriter, name string) {
	f.mu.Lock()
	data, ok := f.objects[name]
	f.mu.Unlock()

	if !ok {
		http.Error(w, "NoSuchKey", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func newTestStore(t *testing.T) (*Store, *fakeGCS) {
	t.Helper()
	fake := &fakeGCS{objects: map[string][]byte{}, types: map[string]string{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := storage.NewClient(context.Background(),
		option.WithEndpoint(server.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	store := NewStore(client, testBucket, "ledgers/")
	t.Cleanup(func() { _ = store.Close() })
	return store, fake
}

func TestObjectName(t *testing.T) {
	s := NewStore(nil, "bucket", "ledgers/")

	assert.Equal(t, "ledgers/data_-100200.json", s.ObjectName("-100200"))
	assert.Equal(t, "data_7.json", NewStore(nil, "bucket", "").ObjectName("7"))
}

func TestStore_ReadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Read(context.Background(), "-100200")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_WriteThenRead(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "-100200", []byte(`{"transactions":[1]}`)))

	data, err := store.Read(ctx, "-100200")
	require.NoError(t, err)
	assert.Equal(t, `{"transactions":[1]}`, string(data))
	assert.Contains(t, fake.objects, "ledgers/data_-100200.json")
	assert.Equal(t, "application/json; charset=utf-8", fake.types["ledgers/data_-100200.json"])
}

func TestStore_WriteOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "-100200", []byte(`{"transactions":[1,2]}`)))
	require.NoError(t, store.Write(ctx, "-100200", []byte(`{"transactions":[]}`)))

	data, err := store.Read(ctx, "-100200")
	require.NoError(t, err)
	assert.Equal(t, `{"transactions":[]}`, string(data))
}

func TestStore_ConversationsAreSeparate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "1", []byte(`{"transactions":[1]}`)))

	_, err := store.Read(ctx, "2")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
