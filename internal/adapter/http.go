package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
	"github.com/MKhiriev/worldsync/models"
)

const (
	// IdentityIssuer is the issuer claim of editor identity tokens.
	IdentityIssuer = "worldsync"

	identityTTL = time.Hour

	// longPollWait is how long the gateway may hold an events request.
	longPollWait = 20 * time.Second
)

type httpRemoteStore struct {
	client *utils.HTTPClient
	prefix string

	editorID       string
	identityKey    string
	requestTimeout time.Duration
	newBackoff     func() retry.Backoff

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the HTTP long-poll implementation of
// [RemoteStore] for the gateway at adapterCfg.URL. editorID identifies this
// editor in the signed identity token when adapterCfg.IdentityKey is set.
//
// Returns an error if the URL is empty or cannot be parsed.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, editorID string, log *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote store url: %w", err)
	}

	return &httpRemoteStore{
		// per-request contexts carry the deadlines, long polls outlive RequestTimeout
		client:         utils.NewHTTPClient(baseURL, 0),
		prefix:         "/v1/" + url.PathEscape(adapterCfg.Module),
		editorID:       editorID,
		identityKey:    adapterCfg.IdentityKey,
		requestTimeout: adapterCfg.RequestTimeout,
		logger:         log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Subscribe implements [RemoteStore] with GET rows followed by long-polled
// GET events.
func (h *httpRemoteStore) Subscribe(ctx context.Context) (<-chan models.RemoteMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return subscribe(ctx, h, h.newBackoff, h.logger), nil
}

func (h *httpRemoteStore) fetchRows(ctx context.Context) ([]models.WorldObject, uint64, error) {
	ctx, cancel := h.withTimeout(ctx, 0)
	defer cancel()

	var rows models.RowsResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&rows).
		Get(h.prefix + "/rows")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: rows request: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}
	return rows.Rows, rows.Seq, nil
}

func (h *httpRemoteStore) fetchEvents(ctx context.Context, after uint64) ([]models.RowEvent, uint64, error) {
	ctx, cancel := h.withTimeout(ctx, longPollWait)
	defer cancel()

	var events models.EventsResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("after", strconv.FormatUint(after, 10)).
		SetQueryParam("wait", longPollWait.String()).
		SetResult(&events).
		Get(h.prefix + "/events")
	if err != nil {
		return nil, after, fmt.Errorf("%w: events request: %w", ErrRemoteUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, after, err
	}
	return events.Events, events.Seq, nil
}

// Insert implements [RemoteStore] via POST reducers/insert_object.
func (h *httpRemoteStore) Insert(ctx context.Context, obj models.WorldObject) error {
	return h.callReducer(ctx, "insert_object", models.InsertObjectRequest{Object: obj})
}

// SetTransform implements [RemoteStore] via POST reducers/set_transform.
func (h *httpRemoteStore) SetTransform(ctx context.Context, id string, transform models.Transform) error {
	return h.callReducer(ctx, "set_transform", models.SetTransformRequest{ID: id, Transform: transform})
}

// Delete implements [RemoteStore] via POST reducers/delete_object.
func (h *httpRemoteStore) Delete(ctx context.Context, id string) error {
	return h.callReducer(ctx, "delete_object", models.DeleteObjectRequest{ID: id})
}

// SetCollision implements [RemoteStore] via POST reducers/set_collision.
func (h *httpRemoteStore) SetCollision(ctx context.Context, id string, shape *models.CollisionShape) error {
	return h.callReducer(ctx, "set_collision", models.SetCollisionRequest{ID: id, CollisionShape: shape})
}

// ReplaceAll implements [RemoteStore] via POST reducers/replace_all.
func (h *httpRemoteStore) ReplaceAll(ctx context.Context, objects []models.WorldObject) error {
	if objects == nil {
		objects = []models.WorldObject{}
	}
	return h.callReducer(ctx, "replace_all", models.ReplaceAllRequest{Objects: objects})
}

func (h *httpRemoteStore) callReducer(ctx context.Context, reducer string, body any) error {
	ctx, cancel := h.withTimeout(ctx, 0)
	defer cancel()

	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(h.prefix + "/reducers/" + reducer)
	if err != nil {
		return fmt.Errorf("%w: %s request: %w", ErrRemoteUnavailable, reducer, err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)
	if h.identityKey == "" {
		return req, nil
	}

	token, err := utils.GenerateIdentityToken(IdentityIssuer, h.editorID, identityTTL, h.identityKey)
	if err != nil {
		return nil, fmt.Errorf("sign identity token: %w", err)
	}
	return req.SetAuthToken(token), nil
}

func (h *httpRemoteStore) withTimeout(ctx context.Context, extra time.Duration) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout+extra)
}
