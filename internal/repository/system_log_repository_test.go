package repository

import (
	"testing"
	"time"

	"github.com/shopsync/internal/constants"
	"github.com/shopsync/internal/models"
)

func TestSystemLogListAndDeleteBefore(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewSystemLogRepository(db)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	entries := []models.SystemLog{
		{Level: constants.LogLevelInfo, Message: "old", Context: constants.SystemLogContextTasks, CreatedAt: now.AddDate(0, 0, -40)},
		{Level: constants.LogLevelError, Message: "recent failure", Context: constants.SystemLogContextTasks, CreatedAt: now.AddDate(0, 0, -1)},
		{Level: constants.LogLevelInfo, Message: "recent", Context: constants.SystemLogContextSync, CreatedAt: now},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			t.Fatalf("create log failed: %v", err)
		}
	}

	logs, total, err := repo.List(SystemLogListFilter{Page: 1, PageSize: 10, Level: "error"})
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if total != 1 || logs[0].Message != "recent failure" {
		t.Fatalf("level filter mismatch: total=%d logs=%+v", total, logs)
	}

	deleted, err := repo.DeleteBefore(now.AddDate(0, 0, -30))
	if err != nil || deleted != 1 {
		t.Fatalf("delete before failed: deleted=%d err=%v", deleted, err)
	}
	_, total, err = repo.List(SystemLogListFilter{Page: 1, PageSize: 10})
	if err != nil || total != 2 {
		t.Fatalf("expected 2 logs remaining, got %d err=%v", total, err)
	}
}
