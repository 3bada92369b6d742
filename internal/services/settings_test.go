package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	settings, err := env.settings.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.Theme != "auto" || settings.DefaultGradingSystem != "10-point" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if settings.DecimalPrecision != 2 || !settings.IncludeFailedCourses {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	again, err := env.settings.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get settings again: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatalf("second get created a new row")
	}
}

func TestUpdateSettings(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := context.Background()

	theme := "dark"
	precision := 3
	updated, err := env.settings.Update(ctx, userID, UpdateSettingsInput{
		Theme:            &theme,
		DecimalPrecision: &precision,
	})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.Theme != "dark" || updated.DecimalPrecision != 3 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.DefaultGradingSystem != "10-point" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestUpdateSettingsInvalidTheme(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()

	theme := "neon"
	_, err := env.settings.Update(context.Background(), userID, UpdateSettingsInput{Theme: &theme})
	if !apierr.Is(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSettingsPrecisionBounds(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := context.Background()

	// An explicit 0 must fail the range check, not slip past it.
	for _, precision := range []int{0, 5} {
		p := precision
		_, err := env.settings.Update(ctx, userID, UpdateSettingsInput{DecimalPrecision: &p})
		if !apierr.Is(err, apierr.CodeValidation) {
			t.Fatalf("expected validation error for precision %d, got %v", p, err)
		}
	}

	p := 1
	updated, err := env.settings.Update(ctx, userID, UpdateSettingsInput{DecimalPrecision: &p})
	if err != nil {
		t.Fatalf("update precision 1: %v", err)
	}
	if updated.DecimalPrecision != 1 {
		t.Fatalf("precision not applied: %+v", updated)
	}
}
