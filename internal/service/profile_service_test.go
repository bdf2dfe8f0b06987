package service

import (
	"errors"
	"testing"

	"github.com/pianao-store/internal/repository"
)

func TestProfileLazyCreateAndNickname(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "nick@example.com")

	profile, err := svc.profiles.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if profile.UserID != user.ID || profile.Nickname != "" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, err := svc.profiles.UpdateNickname(user.ID, "  "); !errors.Is(err, ErrNicknameRequired) {
		t.Fatalf("expected ErrNicknameRequired, got %v", err)
	}
	if _, err := svc.profiles.UpdateNickname(user.ID, " はなこ先生 "); err != nil {
		t.Fatalf("update nickname failed: %v", err)
	}
	if _, err := svc.profiles.SaveAddress(user.ID, validTestAddress()); err != nil {
		t.Fatalf("save address failed: %v", err)
	}
	profile, err = svc.profiles.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if profile.Nickname != "はなこ先生" || profile.Prefecture != "東京都" {
		t.Fatalf("unexpected profile after updates: %+v", profile)
	}
}

func TestUserSettingsDefaultsAndPartialUpdate(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "settings@example.com")
	settings := NewUserSettingsService(repository.NewUserSettingsRepository(svc.db))

	current, err := settings.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if !current.EmailNotification || !current.AppNotification {
		t.Fatalf("defaults should be true: %+v", current)
	}

	off := false
	updated, err := settings.Update(user.ID, UpdateUserSettingsInput{EmailNotification: &off})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.EmailNotification || !updated.AppNotification {
		t.Fatalf("only email_notification should change: %+v", updated)
	}
}
