package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// fakeStore is an in-memory UserStore for handler tests.  Setting failWith
// makes every method return that error, which exercises the 500 paths.
type fakeStore struct {
	mu       sync.Mutex
	byName   map[string]model.User
	nextID   uint64
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byName: map[string]model.User{}}
}

func (f *fakeStore) Create(_ context.Context, u model.User) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	if _, ok := f.byName[u.Username]; ok {
		return 0, repository.ErrUsernameExists
	}
	for _, ex := range f.byName {
		if ex.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byName[u.Username] = u
	return u.ID, nil
}

func (f *fakeStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return model.User{}, f.failWith
	}
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.byName[username]
	return ok, nil
}

func (f *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, u := range f.byName {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id uint64, upd repository.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for name, u := range f.byName {
		if u.ID != id {
			continue
		}
		apply := func(dst *string, v *string) {
			if v != nil {
				*dst = *v
			}
		}
		apply(&u.Email, upd.Email)
		apply(&u.FirstName, upd.FirstName)
		apply(&u.LastName, upd.LastName)
		apply(&u.Mobile, upd.Mobile)
		apply(&u.Address, upd.Address)
		apply(&u.Profile, upd.Profile)
		f.byName[name] = u
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeStore) UpdatePassword(_ context.Context, username, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.byName[username]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	f.byName[username] = u
	return nil
}

// perform runs a handler against a synthetic request and returns the
// recorder.  mutate may set path params or context values before the call.
func perform(t *testing.T, h echo.HandlerFunc, method, target, body string, mutate func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if mutate != nil {
		mutate(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func jsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
	}
	return m
}
