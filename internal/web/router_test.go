package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/inventory"
	"pawer.ru/pawer-bot/internal/features/pet"
	"pawer.ru/pawer-bot/internal/features/users"
	"pawer.ru/pawer-bot/internal/telegram"
	"pawer.ru/pawer-bot/internal/web/handlers"
)

// fakeVerifier принимает единственную «валидную» строку initData.
type fakeVerifier struct{}

func (fakeVerifier) Verify(initData string) (*telegram.InitData, error) {
	if initData != "good-init-data" {
		return nil, common.ErrInvalidInitData
	}
	return &telegram.InitData{
		User: telegram.WebAppUser{ID: 42, Username: "vasya", FirstName: "Вася"},
	}, nil
}

func (f fakeVerifier) VerifyUserID(initData string) (int64, error) {
	data, err := f.Verify(initData)
	if err != nil {
		return 0, err
	}
	return data.User.ID, nil
}

type fakePetService struct {
	pet *pet.Pet
}

func (f *fakePetService) Recompute(_ context.Context, userID int64) (*pet.Pet, error) {
	if f.pet == nil {
		return nil, common.ErrPetNotFound
	}
	return f.pet, nil
}

func (f *fakePetService) ApplyAction(_ context.Context, _ int64, action string) (*pet.ActionResult, error) {
	switch action {
	case pet.ActionFeed, pet.ActionWater, pet.ActionPlay, pet.ActionSleep:
		if f.pet == nil {
			return nil, common.ErrPetNotFound
		}
		return &pet.ActionResult{Pet: f.pet}, nil
	default:
		return nil, common.ErrUnknownAction
	}
}

func (f *fakePetService) Create(_ context.Context, userID int64, name, petType string) (*pet.Pet, error) {
	if err := pet.ValidateName(name); err != nil {
		return nil, err
	}
	f.pet = &pet.Pet{ID: 1, UserID: userID, Name: name, Type: petType, Level: 1,
		Hunger: 100, Thirst: 100, Happiness: 100, Energy: 100}
	return f.pet, nil
}

type fakeUserService struct{}

func (fakeUserService) Get(_ context.Context, userID int64) (*users.User, error) {
	return &users.User{UserID: userID, Username: "vasya", FirstName: "Вася", Coins: 100, Gems: 5}, nil
}

func (fakeUserService) EnsureUser(_ context.Context, _ int64, _, _ string, _ *int64) (bool, error) {
	return false, nil
}

type fakeInventoryService struct{}

func (fakeInventoryService) List(_ context.Context, _ int64) ([]*inventory.Item, error) {
	return []*inventory.Item{{ItemType: "food", Quantity: 3}}, nil
}

func (fakeInventoryService) ListEggs(_ context.Context, _ int64) ([]*inventory.OwnedEgg, error) {
	return nil, nil
}

func newTestRouter(petSvc *fakePetService) http.Handler {
	cfg := &config.Config{AppEnv: "test", JWTSecret: "test-secret", JWTTTL: time.Hour}
	tokens := NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	verifier := fakeVerifier{}

	return NewRouter(cfg,
		handlers.NewAuthHandler(verifier, tokens, fakeUserService{}),
		handlers.NewPetHandler(petSvc),
		handlers.NewMeHandler(fakeUserService{}, fakeInventoryService{}),
		verifier, tokens)
}

func doRequest(h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&fakePetService{})
	w := doRequest(r, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestPetRequiresAuth(t *testing.T) {
	r := newTestRouter(&fakePetService{})

	for _, auth := range []string{"", "Bearer garbage", "tma bad-data", "Basic abc"} {
		w := doRequest(r, http.MethodGet, "/api/pet", auth, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("auth %q: status = %d, want 401", auth, w.Code)
		}
	}
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(&fakePetService{})

	// Обмен initData на токен
	w := doRequest(r, http.MethodPost, "/api/auth", "", `{"init_data":"good-init-data"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("auth status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("нет токена в ответе: %s", w.Body.String())
	}

	// Токен принимается защищённым роутом
	w = doRequest(r, http.MethodGet, "/api/me", "Bearer "+resp.Token, "")
	if w.Code != http.StatusOK {
		t.Errorf("me status = %d, want 200", w.Code)
	}
}

func TestAuthRejectsBadInitData(t *testing.T) {
	r := newTestRouter(&fakePetService{})

	w := doRequest(r, http.MethodPost, "/api/auth", "", `{"init_data":"tampered"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/auth", "", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPetNotFound(t *testing.T) {
	r := newTestRouter(&fakePetService{})

	w := doRequest(r, http.MethodGet, "/api/pet", "tma good-init-data", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestInteract(t *testing.T) {
	svc := &fakePetService{pet: &pet.Pet{ID: 1, UserID: 42, Name: "Барсик", Type: "basic", Level: 1,
		Hunger: 80, Thirst: 80, Happiness: 80, Energy: 80}}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pet/interact", "tma good-init-data", `{"action":"feed"}`)
	if w.Code != http.StatusOK {
		t.Errorf("feed status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/pet/interact", "tma good-init-data", `{"action":"dance"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown action status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/pet/interact", "tma good-init-data", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", w.Code)
	}
}

func TestCreatePetViaAPI(t *testing.T) {
	svc := &fakePetService{}
	r := newTestRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/pet", "tma good-init-data", `{"name":"Барсик"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/pet", "tma good-init-data", `{"name":"<script>"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid name status = %d, want 400", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/pet", "tma good-init-data", `{"name":"Дракон","type":"legendary"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("legendary via API status = %d, want 403", w.Code)
	}
}
