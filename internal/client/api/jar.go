package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/vinaykumardeekonda/srsp-cli/internal/client/repositories/metadata"
)

const cookiesKey = "cookies"

// persistedCookie is the subset of http.Cookie worth keeping across runs.
type persistedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// PersistentJar is an http.CookieJar that writes the backend's session
// cookie through to the local metadata store, so a new process starts with
// the same credentials a browser would have after a page reload. Clearing
// the metadata store (logout) drops the cookie for good.
//
// Attributes are captured from SetCookies' input, since the jar's read side
// only yields name and value. The snapshot keys on cookie name: a later
// Set-Cookie for the same name replaces the saved entry, and an expiry or
// negative max-age removes it.
type PersistentJar struct {
	inner *cookiejar.Jar
	repo  metadata.Repository
	base  *url.URL

	mu    sync.Mutex
	saved map[string]persistedCookie
}

func NewPersistentJar(ctx context.Context, repo metadata.Repository, base *url.URL) (*PersistentJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &PersistentJar{inner: inner, repo: repo, base: base, saved: make(map[string]persistedCookie)}

	raw, err := repo.Get(ctx, cookiesKey)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		var snapshot []persistedCookie
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			cookies := make([]*http.Cookie, 0, len(snapshot))
			for _, c := range snapshot {
				j.saved[c.Name] = c
				cookies = append(cookies, &http.Cookie{
					Name: c.Name, Value: c.Value, Path: c.Path,
					Domain: c.Domain, Expires: c.Expires,
				})
			}
			inner.SetCookies(base, cookies)
		}
		// A corrupt snapshot is simply ignored; the session check will
		// resolve the truth either way.
	}
	return j, nil
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	j.mu.Lock()
	for _, c := range cookies {
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		if c.MaxAge < 0 || (!expires.IsZero() && expires.Before(time.Now())) {
			delete(j.saved, c.Name)
			continue
		}
		j.saved[c.Name] = persistedCookie{
			Name: c.Name, Value: c.Value, Path: c.Path,
			Domain: c.Domain, Expires: expires,
		}
	}
	snapshot := make([]persistedCookie, 0, len(j.saved))
	for _, c := range j.saved {
		snapshot = append(snapshot, c)
	}
	j.mu.Unlock()

	sort.Slice(snapshot, func(a, b int) bool { return snapshot[a].Name < snapshot[b].Name })
	j.persist(snapshot)
}

func (j *PersistentJar) persist(snapshot []persistedCookie) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = j.repo.Set(ctx, cookiesKey, raw)
}
