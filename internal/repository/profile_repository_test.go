package repository

import (
	"testing"

	"github.com/pianao-store/internal/models"
)

func TestProfileUpsertReplacesFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepository(db)

	if got, err := repo.GetByUserID(5); err != nil || got != nil {
		t.Fatalf("missing profile should be nil, got=%v err=%v", got, err)
	}
	if err := repo.Upsert(&models.UserProfile{UserID: 5, Nickname: "ぴあの"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Upsert(&models.UserProfile{
		UserID:       5,
		Nickname:     "ぴあの",
		FullName:     "山田 花子",
		PostalCode:   "100-0001",
		Prefecture:   "東京都",
		AddressLine1: "千代田区1-1",
		PhoneNumber:  "090-0000-0000",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	profile, err := repo.GetByUserID(5)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.FullName != "山田 花子" || profile.Nickname != "ぴあの" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestUserSettingsCreateIfAbsentKeepsExisting(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserSettingsRepository(db)

	if err := repo.CreateIfAbsent(&models.UserSettings{UserID: 9, EmailNotification: true, AppNotification: true}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Update(9, map[string]interface{}{"email_notification": false}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := repo.CreateIfAbsent(&models.UserSettings{UserID: 9, EmailNotification: true, AppNotification: true}); err != nil {
		t.Fatalf("second create should be ignored: %v", err)
	}
	settings, err := repo.GetByUserID(9)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if settings.EmailNotification {
		t.Fatalf("existing settings must not be overwritten")
	}
	if !settings.AppNotification {
		t.Fatalf("app notification should stay true")
	}
}
