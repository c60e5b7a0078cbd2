package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/settings"
)

func seedSetting(t *testing.T, repo Repository, key string, value string) {
	t.Helper()
	if _, err := repo.Upsert(context.Background(), &SiteSetting{
		ID:    uuid.New(),
		Key:   key,
		Value: json.RawMessage(value),
	}); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestSocialsFiltersAndOrders(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, settings.KeySocials, `[
		{"platform":"tiktok","url":"https://tiktok.com/@amara","isEnabled":true,"order":2},
		{"platform":"facebook","url":"https://facebook.com/amara","isEnabled":true,"order":1},
		{"platform":"zalo","url":"https://zalo.me/amara","isEnabled":false,"order":0}
	]`)

	links, err := svc.Socials(context.Background())
	if err != nil {
		t.Fatalf("socials: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 enabled links, got %d", len(links))
	}
	if links[0].Platform != "facebook" || links[1].Platform != "tiktok" {
		t.Fatalf("unexpected order: %s, %s", links[0].Platform, links[1].Platform)
	}
}

func TestSocialsMissingKeyReturnsEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	links, err := svc.Socials(context.Background())
	if err != nil {
		t.Fatalf("socials: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(links))
	}
}

func TestSocialsMalformedValueDegrades(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, settings.KeySocials, `{"not":"a list"}`)

	links, err := svc.Socials(context.Background())
	if err != nil {
		t.Fatalf("socials: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected empty list on decode failure, got %d", len(links))
	}
}

func TestFloatingActionsFiltersAndOrders(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, settings.KeyFloatingActions, `[
		{"iconKey":"phone","label":"Hotline","href":"tel:+84901234567","backgroundColor":"#2d6a4f","isEnabled":true,"order":1},
		{"iconKey":"zalo","label":"Zalo","href":"https://zalo.me/amara","backgroundColor":"#0068ff","isEnabled":true,"order":0},
		{"iconKey":"mail","label":"Email","href":"mailto:hi@amara.vn","backgroundColor":"#333","isEnabled":false,"order":2}
	]`)

	actions, err := svc.FloatingActions(context.Background())
	if err != nil {
		t.Fatalf("floating actions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 enabled actions, got %d", len(actions))
	}
	if actions[0].IconKey != "zalo" || actions[1].IconKey != "phone" {
		t.Fatalf("unexpected order: %s, %s", actions[0].IconKey, actions[1].IconKey)
	}
}

func TestSectionVisibilityStructured(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, settings.KeyTikTokSectionVisible, `{"mobile":true,"tablet":false,"desktop":true}`)

	visible, err := svc.SectionVisibility(context.Background(), settings.KeyTikTokSectionVisible)
	if err != nil {
		t.Fatalf("visibility: %v", err)
	}
	if !visible.Mobile || visible.Tablet || !visible.Desktop {
		t.Fatalf("unexpected visibility: %+v", visible)
	}
}

func TestSectionVisibilityLegacyBoolean(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, settings.KeyTikTokSectionVisible, `true`)

	visible, err := svc.SectionVisibility(context.Background(), settings.KeyTikTokSectionVisible)
	if err != nil {
		t.Fatalf("visibility: %v", err)
	}
	if !visible.Mobile || !visible.Tablet || !visible.Desktop {
		t.Fatalf("legacy true should enable all breakpoints: %+v", visible)
	}

	seedSetting(t, repo, settings.KeyTikTokSectionVisible, `false`)

	visible, err = svc.SectionVisibility(context.Background(), settings.KeyTikTokSectionVisible)
	if err != nil {
		t.Fatalf("visibility: %v", err)
	}
	if visible.Mobile || visible.Tablet || visible.Desktop {
		t.Fatalf("legacy false should disable all breakpoints: %+v", visible)
	}
}

func TestSectionVisibilityMissingDefaultsVisible(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	visible, err := svc.SectionVisibility(context.Background(), settings.KeyTikTokSectionVisible)
	if err != nil {
		t.Fatalf("visibility: %v", err)
	}
	if !visible.Mobile || !visible.Tablet || !visible.Desktop {
		t.Fatalf("missing key should default to visible: %+v", visible)
	}
}

func TestUpsertValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	actor := uuid.New()

	if _, err := svc.Upsert(context.Background(), "  ", json.RawMessage(`{}`), actor); !errors.Is(err, settings.ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
	if _, err := svc.Upsert(context.Background(), "theme", nil, actor); !errors.Is(err, settings.ErrValueRequired) {
		t.Fatalf("expected ErrValueRequired, got %v", err)
	}
	if _, err := svc.Upsert(context.Background(), "theme", json.RawMessage(`{broken`), actor); !errors.Is(err, settings.ErrValueRequired) {
		t.Fatalf("expected ErrValueRequired for invalid JSON, got %v", err)
	}
}

func TestUpsertOverwritesValue(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	actor := uuid.New()

	first, err := svc.Upsert(context.Background(), "announcement", json.RawMessage(`{"text":"Khai truong"}`), actor)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second, err := svc.Upsert(context.Background(), "announcement", json.RawMessage(`{"text":"Sale 9.9"}`), actor)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert should keep the original row id")
	}

	raw, err := svc.Get(context.Background(), "announcement")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["text"] != "Sale 9.9" {
		t.Fatalf("expected overwritten value, got %q", decoded["text"])
	}
}

func TestDeleteSetting(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	seedSetting(t, repo, "announcement", `{"text":"hello"}`)

	if err := svc.Delete(context.Background(), "announcement"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "announcement"); !settings.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "announcement"); !settings.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
