package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/models"
)

// RESTClient implements Client over the backend's JSON/HTTP contract.
// The cookie jar supplied at construction carries the session cookie; no
// other credential is ever attached.
type RESTClient struct {
	base *url.URL
	http *http.Client
}

func New(baseURL string, jar http.CookieJar, timeout time.Duration) (*RESTClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &RESTClient{
		base: base,
		http: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// errorBody is the backend's structured error payload.
type errorBody struct {
	Message string `json:"message"`
}

func (c *RESTClient) endpoint(path string) string {
	return strings.TrimRight(c.base.String(), "/") + path
}

// checkStatus translates a non-2xx response into the failure taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var eb errorBody
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(body, &eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Status)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg := eb.Message
		if msg == "" {
			msg = "invalid request"
		}
		return &ValidationError{Message: msg}
	default:
		return fmt.Errorf("%w: backend returned %s", ErrUnavailable, resp.Status)
	}
}

// doJSON issues a request with an optional JSON body and decodes the
// response into out when out is non-nil. Transport-level failures map to
// ErrUnavailable.
func (c *RESTClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Some mutating endpoints answer with an empty body.
			return nil
		}
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// unwrapList decodes either a bare JSON array or an object wrapping the
// array under one of the given keys. The backend has served both shapes;
// the tolerant reading is canonical.
func unwrapList(raw json.RawMessage, out any, keys ...string) error {
	if err := json.Unmarshal(raw, out); err == nil {
		return nil
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	for _, key := range keys {
		if inner, ok := envelope[key]; ok {
			if err := json.Unmarshal(inner, out); err != nil {
				return fmt.Errorf("decoding response %q: %w", key, err)
			}
			return nil
		}
	}
	return fmt.Errorf("decoding response: none of %v present", keys)
}

// ---- auth ----

func (c *RESTClient) Register(ctx context.Context, name, email string, password []byte) error {
	in := map[string]string{"name": name, "email": email, "password": string(password)}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", in, nil)
}

func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	in := map[string]string{"email": email, "password": string(password)}
	var out struct {
		User *models.Session `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: login response missing user", ErrUnauthorized)
	}
	return out.User, nil
}

func (c *RESTClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *RESTClient) Me(ctx context.Context) (*models.Session, error) {
	var out struct {
		User *models.Session `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: session response missing user", ErrUnauthorized)
	}
	return out.User, nil
}

// ---- resources ----

func (c *RESTClient) Categories(ctx context.Context) ([]models.Category, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources/categories", nil, &raw); err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := unwrapList(raw, &categories, "data", "categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RESTClient) Subjects(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources/subjects", nil, &raw); err != nil {
		return nil, err
	}
	var subjects []string
	if err := unwrapList(raw, &subjects, "data", "subjects"); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *RESTClient) Upload(ctx context.Context, draft models.UploadDraft) (*models.Resource, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", draft.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, draft.File); err != nil {
		return nil, fmt.Errorf("reading upload file: %w", err)
	}

	fields := map[string]string{
		"title":       draft.Title,
		"description": draft.Description,
		"category":    draft.Category,
		"subject":     draft.Subject,
	}
	optional := map[string]string{
		"college": draft.College,
		"course":  draft.Course,
		"year":    draft.Year,
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	for name, value := range optional {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/resources/upload"), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var created models.Resource
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &created, nil
}

func (c *RESTClient) MyUploads(ctx context.Context) ([]models.Resource, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources/my-Uploads", nil, &raw); err != nil {
		return nil, err
	}
	var resources []models.Resource
	if err := unwrapList(raw, &resources, "resources", "data"); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *RESTClient) Resubmit(ctx context.Context, id string, changes models.ResubmitChanges) (*models.Resource, error) {
	var updated models.Resource
	path := "/api/resources/resubmit/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, changes, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeleteResource(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/resources/"+url.PathEscape(id), nil, nil)
}

func (c *RESTClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.doJSON(ctx, http.MethodGet, "/api/resources/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download streams one stored file of a resource. The caller owns the
// returned body.
func (c *RESTClient) Download(ctx context.Context, id, filename string) (io.ReadCloser, error) {
	path := "/api/resources/" + url.PathEscape(id) + "/download/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// ---- admin ----

func (c *RESTClient) PendingResources(ctx context.Context) ([]models.Resource, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/resources/pending", nil, &raw); err != nil {
		return nil, err
	}
	var resources []models.Resource
	if err := unwrapList(raw, &resources, "resources", "data"); err != nil {
		return nil, err
	}
	return resources, nil
}

func (c *RESTClient) UpdateResourceStatus(ctx context.Context, id string, status models.Status) (*models.Resource, error) {
	in := map[string]models.Status{"status": status}
	path := "/api/admin/resources/" + url.PathEscape(id) + "/status"

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPut, path, in, &raw); err != nil {
		return nil, err
	}

	// The backend may return the updated resource directly or wrapped;
	// either way a missing body is fine, the caller patches locally.
	var updated models.Resource
	if err := json.Unmarshal(raw, &updated); err == nil && updated.ID != "" {
		return &updated, nil
	}
	var envelope struct {
		Resource *models.Resource `json:"resource"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Resource != nil {
		return envelope.Resource, nil
	}
	return nil, nil
}

func (c *RESTClient) DeleteAdminResource(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/resources/"+url.PathEscape(id), nil, nil)
}

func (c *RESTClient) ActivityLogs(ctx context.Context) ([]models.ActivityLogEntry, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/logs", nil, &raw); err != nil {
		return nil, err
	}
	var logs []models.ActivityLogEntry
	if err := unwrapList(raw, &logs, "logs", "data"); err != nil {
		return nil, err
	}
	return logs, nil
}
