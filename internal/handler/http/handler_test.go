package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/internal/worlddb"
	"github.com/MKhiriev/worldsync/models"
)

const (
	testModule = "world"
	testKey    = "gateway-secret"
)

func newTestHandler(t *testing.T, mutate ...func(*config.GatewayConfig)) (*Handler, *worlddb.World) {
	t.Helper()
	cfg := config.GatewayConfig{
		Address:         "127.0.0.1:0",
		Module:          testModule,
		RequestTimeout:  2 * time.Second,
		LongPollTimeout: 2 * time.Second,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	world := worlddb.New(logger.Nop())
	return NewHandler(world, cfg, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), logger.Nop()), world
}

func withIdentityKey(cfg *config.GatewayConfig) { cfg.IdentityKey = testKey }

func object(id string, x float32) models.WorldObject {
	obj := models.WorldObject{ID: id, AssetPath: "models/crate.gltf", Transform: models.IdentityTransform()}
	obj.Transform.Translation.X = x
	return obj
}

func do(t *testing.T, router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = strings.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	h, world := newTestHandler(t)
	require.NoError(t, world.Insert(object("obj-1", 0)))
	router := h.Init()

	routes := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/version", nil},
		{http.MethodGet, "/v1/world/rows", nil},
		{http.MethodGet, "/v1/world/events", nil},
		{http.MethodPost, "/v1/world/reducers/insert_object", models.InsertObjectRequest{Object: object("obj-2", 0)}},
		{http.MethodPost, "/v1/world/reducers/set_transform", models.SetTransformRequest{ID: "obj-1", Transform: models.IdentityTransform()}},
		{http.MethodPost, "/v1/world/reducers/set_collision", models.SetCollisionRequest{ID: "obj-1", CollisionShape: models.Ball(1)}},
		{http.MethodPost, "/v1/world/reducers/delete_object", models.DeleteObjectRequest{ID: "obj-2"}},
		{http.MethodPost, "/v1/world/reducers/replace_all", models.ReplaceAllRequest{Objects: []models.WorldObject{}}},
	}
	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestInit_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown route", http.MethodGet, "/api/nonexistent"},
		{"unknown module", http.MethodGet, "/v1/other/rows"},
		{"unknown reducer", http.MethodPost, "/v1/world/reducers/drop_table"},
		{"reducer via GET", http.MethodGet, "/v1/world/reducers/insert_object"},
		{"rows via POST", http.MethodPost, "/v1/world/rows"},
		{"version via DELETE", http.MethodDelete, "/version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.NotEmpty(t, decode[models.ErrorResponse](t, rec).Error)
		})
	}
}

func TestGetVersion(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Init(), http.MethodGet, "/version", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "version 1.2.3, built 2026-10-01, commit abc123", rec.Body.String())
}

func TestGetRows(t *testing.T) {
	h, world := newTestHandler(t)
	router := h.Init()

	rec := do(t, router, http.MethodGet, "/v1/world/rows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rows": [], "seq": 0}`, rec.Body.String())

	require.NoError(t, world.Insert(object("obj-2", 2)))
	require.NoError(t, world.Insert(object("obj-1", 1)))

	rec = do(t, router, http.MethodGet, "/v1/world/rows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[models.RowsResponse](t, rec)
	assert.Equal(t, uint64(2), rows.Seq)
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, "obj-1", rows.Rows[0].ID)
	assert.Equal(t, "obj-2", rows.Rows[1].ID)
}

func TestGetEvents(t *testing.T) {
	h, world := newTestHandler(t)
	router := h.Init()
	require.NoError(t, world.Insert(object("obj-1", 0)))
	require.NoError(t, world.SetTransform("obj-1", object("obj-1", 3).Transform))
	require.NoError(t, world.Delete("obj-1"))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantKinds  []models.RowEventKind
		wantSeq    uint64
	}{
		{name: "from start", query: "", wantStatus: http.StatusOK, wantKinds: []models.RowEventKind{models.RowInserted, models.RowUpdated, models.RowDeleted}, wantSeq: 3},
		{name: "after cursor", query: "?after=2", wantStatus: http.StatusOK, wantKinds: []models.RowEventKind{models.RowDeleted}, wantSeq: 3},
		{name: "caught up", query: "?after=3", wantStatus: http.StatusOK, wantKinds: []models.RowEventKind{}, wantSeq: 3},
		{name: "cursor ahead", query: "?after=9", wantStatus: http.StatusGone},
		{name: "bad cursor", query: "?after=abc", wantStatus: http.StatusBadRequest},
		{name: "negative cursor", query: "?after=-1", wantStatus: http.StatusBadRequest},
		{name: "bad wait", query: "?wait=soon", wantStatus: http.StatusBadRequest},
		{name: "negative wait", query: "?wait=-1s", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, "/v1/world/events"+tt.query, nil)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[models.EventsResponse](t, rec)
			assert.Equal(t, tt.wantSeq, resp.Seq)
			kinds := make([]models.RowEventKind, 0, len(resp.Events))
			for _, ev := range resp.Events {
				kinds = append(kinds, ev.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestGetEvents_LongPollWakesOnCommit(t *testing.T) {
	h, world := newTestHandler(t)
	router := h.Init()

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/v1/world/events?after=0&wait=5s", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		done <- rec
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, world.Insert(object("obj-1", 0)))

	select {
	case rec := <-done:
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[models.EventsResponse](t, rec)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, "obj-1", resp.Events[0].ID)
		assert.Equal(t, uint64(1), resp.Seq)
	case <-time.After(2 * time.Second):
		t.Fatal("long poll did not return after a commit")
	}
}

func TestGetEvents_WaitIsCapped(t *testing.T) {
	h, _ := newTestHandler(t, func(cfg *config.GatewayConfig) { cfg.LongPollTimeout = 30 * time.Millisecond })

	start := time.Now()
	rec := do(t, h.Init(), http.MethodGet, "/v1/world/events?after=0&wait=1h", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, time.Since(start), time.Second)
	resp := decode[models.EventsResponse](t, rec)
	assert.Empty(t, resp.Events)
	assert.Equal(t, uint64(0), resp.Seq)
}

func TestReducers(t *testing.T) {
	tests := []struct {
		name       string
		reducer    string
		body       any
		wantStatus int
		check      func(t *testing.T, world *worlddb.World)
	}{
		{
			name:       "insert",
			reducer:    "insert_object",
			body:       models.InsertObjectRequest{Object: models.WorldObject{ID: "obj-9", AssetPath: `models\helmet.gltf`, Transform: models.IdentityTransform()}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, world *worlddb.World) {
				rows, _ := world.Rows()
				require.Len(t, rows, 2)
				assert.Equal(t, "models/helmet.gltf", rows[1].AssetPath)
			},
		},
		{
			name:       "insert duplicate id",
			reducer:    "insert_object",
			body:       models.InsertObjectRequest{Object: object("obj-1", 0)},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "insert absolute asset path",
			reducer:    "insert_object",
			body:       models.InsertObjectRequest{Object: models.WorldObject{ID: "obj-9", AssetPath: "/etc/passwd", Transform: models.IdentityTransform()}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "set transform",
			reducer:    "set_transform",
			body:       models.SetTransformRequest{ID: "obj-1", Transform: object("obj-1", 7).Transform},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, world *worlddb.World) {
				rows, _ := world.Rows()
				assert.Equal(t, float32(7), rows[0].Transform.Translation.X)
			},
		},
		{
			name:       "set transform on missing row",
			reducer:    "set_transform",
			body:       models.SetTransformRequest{ID: "ghost", Transform: models.IdentityTransform()},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "zero scale",
			reducer:    "set_transform",
			body:       models.SetTransformRequest{ID: "obj-1", Transform: models.Transform{Rotation: models.QuatIdentity}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "set collision",
			reducer:    "set_collision",
			body:       models.SetCollisionRequest{ID: "obj-1", CollisionShape: models.Capsule(1, 0.25)},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, world *worlddb.World) {
				rows, _ := world.Rows()
				require.NotNil(t, rows[0].CollisionShape)
				assert.Equal(t, models.CollisionCapsule, rows[0].CollisionShape.Kind)
			},
		},
		{
			name:       "invalid collision",
			reducer:    "set_collision",
			body:       models.SetCollisionRequest{ID: "obj-1", CollisionShape: models.Ball(-1)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "delete",
			reducer:    "delete_object",
			body:       models.DeleteObjectRequest{ID: "obj-1"},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, world *worlddb.World) {
				rows, _ := world.Rows()
				assert.Empty(t, rows)
			},
		},
		{
			name:       "delete without id",
			reducer:    "delete_object",
			body:       models.DeleteObjectRequest{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "delete missing row",
			reducer:    "delete_object",
			body:       models.DeleteObjectRequest{ID: "ghost"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "replace all",
			reducer:    "replace_all",
			body:       models.ReplaceAllRequest{Objects: []models.WorldObject{object("obj-2", 0), object("obj-3", 0)}},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, world *worlddb.World) {
				rows, _ := world.Rows()
				require.Len(t, rows, 2)
				assert.Equal(t, "obj-2", rows[0].ID)
			},
		},
		{
			name:       "replace all with duplicate ids",
			reducer:    "replace_all",
			body:       models.ReplaceAllRequest{Objects: []models.WorldObject{object("obj-2", 0), object("obj-2", 1)}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			reducer:    "insert_object",
			body:       `{"object": `,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, world := newTestHandler(t)
			require.NoError(t, world.Insert(object("obj-1", 0)))
			seq := world.Seq()

			rec := do(t, h.Init(), http.MethodPost, "/v1/world/reducers/"+tt.reducer, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, decode[models.ErrorResponse](t, rec).Error)
				assert.Equal(t, seq, world.Seq(), "a rejected reducer emits no events")
				return
			}
			assert.Equal(t, world.Seq(), decode[models.ReducerResponse](t, rec).Seq)
			if tt.check != nil {
				tt.check(t, world)
			}
		})
	}
}

func TestAuth(t *testing.T) {
	valid, err := utils.GenerateIdentityToken(adapter.IdentityIssuer, "editor-1", time.Minute, testKey)
	require.NoError(t, err)
	otherKey, err := utils.GenerateIdentityToken(adapter.IdentityIssuer, "editor-1", time.Minute, "another-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateIdentityToken("someone-else", "editor-1", time.Minute, testKey)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid identity", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "token only", header: valid, wantStatus: http.StatusUnauthorized},
		{name: "other key", header: "Bearer " + otherKey, wantStatus: http.StatusUnauthorized},
		{name: "other issuer", header: "Bearer " + otherIssuer, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, world := newTestHandler(t, withIdentityKey)
			body := models.InsertObjectRequest{Object: object("obj-1", 0)}

			var rec *httptest.ResponseRecorder
			if tt.header == "" {
				rec = do(t, h.Init(), http.MethodPost, "/v1/world/reducers/insert_object", body)
			} else {
				rec = do(t, h.Init(), http.MethodPost, "/v1/world/reducers/insert_object", body, "Authorization", tt.header)
			}

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, uint64(1), world.Seq())
			} else {
				assert.Equal(t, uint64(0), world.Seq())
			}
		})
	}
}

func TestAuth_StoresEditorID(t *testing.T) {
	h, _ := newTestHandler(t, withIdentityKey)
	token, err := utils.GenerateIdentityToken(adapter.IdentityIssuer, "editor-7", time.Minute, testKey)
	require.NoError(t, err)

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetEditorIDFromContext(r.Context())
	})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "editor-7", got)
}

func TestAuth_ReadsNeedNoIdentity(t *testing.T) {
	h, _ := newTestHandler(t, withIdentityKey)

	rec := do(t, h.Init(), http.MethodGet, "/v1/world/rows", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWipe(t *testing.T) {
	withDevRoutes := func(cfg *config.GatewayConfig) { cfg.DevRoutes = true }

	t.Run("deletes every row", func(t *testing.T) {
		h, world := newTestHandler(t, withDevRoutes)
		require.NoError(t, world.Insert(object("obj-1", 0)))
		require.NoError(t, world.Insert(object("obj-2", 1)))

		rec := do(t, h.Init(), http.MethodPost, "/v1/world/dev/wipe", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, models.WipeResponse{Deleted: 2, Seq: 4}, decode[models.WipeResponse](t, rec))
		rows, _ := world.Rows()
		assert.Empty(t, rows)
	})

	t.Run("needs identity", func(t *testing.T) {
		h, world := newTestHandler(t, withDevRoutes, withIdentityKey)
		require.NoError(t, world.Insert(object("obj-1", 0)))

		rec := do(t, h.Init(), http.MethodPost, "/v1/world/dev/wipe", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, uint64(1), world.Seq())
	})

	t.Run("not routed without dev routes", func(t *testing.T) {
		h, world := newTestHandler(t)
		require.NoError(t, world.Insert(object("obj-1", 0)))

		rec := do(t, h.Init(), http.MethodPost, "/v1/world/dev/wipe", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, uint64(1), world.Seq())
	})
}

func TestWithTraceID(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	rec := do(t, router, http.MethodGet, "/version", nil)
	generated := rec.Header().Get(traceIDHeader)
	assert.Len(t, generated, 36)

	rec = do(t, router, http.MethodGet, "/version", nil, traceIDHeader, "trace-from-editor")
	assert.Equal(t, "trace-from-editor", rec.Header().Get(traceIDHeader))

	rec = do(t, router, http.MethodGet, "/version", nil, traceIDHeader, strings.Repeat("x", maxTraceIDLen+1))
	assert.Len(t, rec.Header().Get(traceIDHeader), 36, "oversized trace ids are replaced")
}

func TestWithLogging_WritesAccessLine(t *testing.T) {
	h, _ := newTestHandler(t)
	var buf bytes.Buffer
	h.logger = &logger.Logger{Logger: h.logger.Output(&buf).Level(-1)}

	do(t, h.Init(), http.MethodPost, "/v1/world/reducers/delete_object", models.DeleteObjectRequest{ID: "ghost"})

	out := buf.String()
	assert.Contains(t, out, `"route":"/v1/{module}/reducers/delete_object"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"trace_id":`)
}

func TestWithGZip(t *testing.T) {
	h, world := newTestHandler(t)
	require.NoError(t, world.Insert(object("obj-1", 0)))
	router := h.Init()

	rec := do(t, router, http.MethodGet, "/v1/world/rows", nil, "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var rows models.RowsResponse
	require.NoError(t, json.Unmarshal(raw, &rows))
	assert.Len(t, rows.Rows, 1)

	plain := do(t, router, http.MethodGet, "/v1/world/rows", nil)
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{worlddb.ErrObjectNotFound, http.StatusNotFound},
		{worlddb.ErrDuplicateID, http.StatusConflict},
		{worlddb.ErrEventsExpired, http.StatusGone},
		{ErrInvalidCursor, http.StatusBadRequest},
		{ErrUnknownModule, http.StatusNotFound},
		{ErrInvalidIdentity, http.StatusUnauthorized},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
