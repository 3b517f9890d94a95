package token

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EmmaAtom00/students-rest-api/internal/auth"
	"github.com/EmmaAtom00/students-rest-api/internal/storage"
	"github.com/EmmaAtom00/students-rest-api/internal/types"
	"github.com/EmmaAtom00/students-rest-api/internal/utils/response"
)

// fakeStorage implements just the user/token half of the interface;
// the embedded nil interface panics on anything else.
type fakeStorage struct {
	storage.Storage

	users  map[string]types.User
	tokens map[int64]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:  make(map[string]types.User),
		tokens: make(map[int64]string),
	}
}

func (f *fakeStorage) addUser(t *testing.T, username, password string) types.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := types.User{
		ID:           int64(len(f.users) + 1),
		Username:     username,
		PasswordHash: hash,
	}
	f.users[username] = user
	return user
}

func (f *fakeStorage) GetUserByUsername(username string) (types.User, error) {
	user, ok := f.users[username]
	if !ok {
		return types.User{}, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStorage) GetOrCreateToken(userID int64, candidateKey string) (string, error) {
	if key, ok := f.tokens[userID]; ok {
		return key, nil
	}
	f.tokens[userID] = candidateKey
	return candidateKey, nil
}

func obtain(store storage.Storage, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/token/",
		strings.NewReader(body))
	Obtain(store)(rec, req)
	return rec
}

func TestObtain(t *testing.T) {
	t.Run("valid credentials return a non-empty token", func(t *testing.T) {
		store := newFakeStorage()
		store.addUser(t, "admin", "secret")

		rec := obtain(store, `{"username": "admin", "password": "secret"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["token"] == "" {
			t.Fatalf("expected a non-empty token, got %v", body)
		}
	})

	t.Run("repeat login returns the same key", func(t *testing.T) {
		store := newFakeStorage()
		store.addUser(t, "admin", "secret")

		first := obtain(store, `{"username": "admin", "password": "secret"}`)
		second := obtain(store, `{"username": "admin", "password": "secret"}`)

		var a, b map[string]string
		if err := json.NewDecoder(first.Body).Decode(&a); err != nil {
			t.Fatalf("decode first response: %v", err)
		}
		if err := json.NewDecoder(second.Body).Decode(&b); err != nil {
			t.Fatalf("decode second response: %v", err)
		}
		if a["token"] != b["token"] {
			t.Errorf("expected a stable key, got %q then %q", a["token"], b["token"])
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		store := newFakeStorage()
		store.addUser(t, "admin", "secret")

		rec := obtain(store, `{"username": "admin", "password": "nope"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown user matches the wrong-password response", func(t *testing.T) {
		store := newFakeStorage()
		store.addUser(t, "admin", "secret")

		wrongPass := obtain(store, `{"username": "admin", "password": "nope"}`)
		unknown := obtain(store, `{"username": "ghost", "password": "nope"}`)

		if unknown.Code != wrongPass.Code {
			t.Errorf("status codes differ: %d vs %d", unknown.Code, wrongPass.Code)
		}
		if unknown.Body.String() != wrongPass.Body.String() {
			t.Errorf("bodies differ: %s vs %s", unknown.Body, wrongPass.Body)
		}
	})

	t.Run("missing fields return a validation error", func(t *testing.T) {
		rec := obtain(newFakeStorage(), `{"username": "admin"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var resp response.Response
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !strings.Contains(resp.Error, "Password") {
			t.Errorf("expected the error to name Password, got %q", resp.Error)
		}
	})

	t.Run("empty body returns 400", func(t *testing.T) {
		rec := obtain(newFakeStorage(), "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
