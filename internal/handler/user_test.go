package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
)

func seedUser(store *fakeStore, u model.User) model.User {
	store.nextID++
	u.ID = store.nextID
	store.byName[u.Username] = u
	return u
}

func TestGetUserStripsPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedUser(store, model.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$04$secret",
		FirstName:    "Alice",
	})
	h := NewUserHandler(store)

	rec := perform(t, h.GetUser, http.MethodGet, "/api/user/alice", "", func(c echo.Context) {
		c.SetParamNames("username")
		c.SetParamValues("alice")
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	body := jsonBody(t, rec)
	for _, key := range []string{"password", "passwordHash", "password_hash"} {
		if _, ok := body[key]; ok {
			t.Fatalf("response leaks %q", key)
		}
	}
	if body["username"] != "alice" || body["firstName"] != "Alice" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(newFakeStore())
	rec := perform(t, h.GetUser, http.MethodGet, "/api/user/ghost", "", func(c echo.Context) {
		c.SetParamNames("username")
		c.SetParamValues("ghost")
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetUserMissingUsername(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(newFakeStore())
	rec := perform(t, h.GetUser, http.MethodGet, "/api/user/", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateUserMergesFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	u := seedUser(store, model.User{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		Address:      "old street",
	})
	h := NewUserHandler(store)

	rec := perform(t, h.UpdateUser, http.MethodPut, "/api/updateuser",
		`{"address":"new street","profile":"avatar.png"}`, func(c echo.Context) {
			c.Set("user_id", u.ID)
			c.Set("username", u.Username)
		})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	got := store.byName["alice"]
	if got.Address != "new street" || got.Profile != "avatar.png" {
		t.Fatalf("fields not merged: %+v", got)
	}
	// Untouched fields survive the merge.
	if got.FirstName != "Alice" || got.Email != "a@x.com" || got.PasswordHash != "hash" {
		t.Fatalf("merge clobbered fields: %+v", got)
	}
}

func TestUpdateUserWithoutTokenIdentity(t *testing.T) {
	t.Parallel()

	h := NewUserHandler(newFakeStore())
	rec := perform(t, h.UpdateUser, http.MethodPut, "/api/updateuser",
		`{"address":"x"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
