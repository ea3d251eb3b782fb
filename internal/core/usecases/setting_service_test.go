package usecases_test

import (
	"context"
	"testing"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
)

func TestSettingService_APIKey_NotConfigured(t *testing.T) {
	svc := usecases.NewSettingService(&mockSettingRepo{}, nil)

	key, err := svc.APIKey(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "" {
		t.Errorf("expected empty key, got %q", key)
	}
}

func TestSettingService_APIKey_CachedAfterFirstRead(t *testing.T) {
	reads := 0
	repo := &mockSettingRepo{
		getFn: func(ctx context.Context, name string) (*domain.Setting, error) {
			reads++
			return &domain.Setting{Name: name, Value: "ABC"}, nil
		},
	}
	svc := usecases.NewSettingService(repo, newMockCache())

	for i := 0; i < 3; i++ {
		key, err := svc.APIKey(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "ABC" {
			t.Errorf("expected ABC, got %q", key)
		}
	}
	if reads != 1 {
		t.Errorf("expected 1 repository read, got %d", reads)
	}
}

func TestSettingService_SetAPIKey_InvalidatesCache(t *testing.T) {
	value := "old"
	repo := &mockSettingRepo{
		getFn: func(ctx context.Context, name string) (*domain.Setting, error) {
			return &domain.Setting{Name: name, Value: value}, nil
		},
		setFn: func(ctx context.Context, name, v string) error {
			value = v
			return nil
		},
	}
	svc := usecases.NewSettingService(repo, newMockCache())

	if k, _ := svc.APIKey(context.Background()); k != "old" {
		t.Fatalf("expected old, got %q", k)
	}
	if err := svc.SetAPIKey(context.Background(), "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k, _ := svc.APIKey(context.Background()); k != "new" {
		t.Errorf("stale key after write, got %q", k)
	}
}

func TestSettingService_SetAPIKey_RejectsEmpty(t *testing.T) {
	svc := usecases.NewSettingService(&mockSettingRepo{}, nil)
	if err := svc.SetAPIKey(context.Background(), ""); err == nil {
		t.Error("expected error for empty key")
	}
}
