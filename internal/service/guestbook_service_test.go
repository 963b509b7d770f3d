package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestGuestbookService_CreateHashesPassword(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewGuestbookService(gdb)

	entry, err := svc.Create(GuestbookInput{Name: "손님", Content: "잘 보고 갑니다", Password: "secret"})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if entry.Password == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(entry.Password), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	if _, err := svc.Create(GuestbookInput{Name: "", Content: "c", Password: "p"}); !errors.Is(err, ErrEntryNameRequired) {
		t.Fatalf("expected ErrEntryNameRequired, got %v", err)
	}
	if _, err := svc.Create(GuestbookInput{Name: "a", Content: " ", Password: "p"}); !errors.Is(err, ErrEntryContentRequired) {
		t.Fatalf("expected ErrEntryContentRequired, got %v", err)
	}
}

func TestGuestbookService_ListNewestFirst(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewGuestbookService(gdb)

	first, err := svc.Create(GuestbookInput{Name: "a", Content: "1", Password: "p"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Create(GuestbookInput{Name: "b", Content: "2", Password: "p"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestGuestbookService_DeleteRequiresPassword(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewGuestbookService(gdb)

	entry, err := svc.Create(GuestbookInput{Name: "a", Content: "내용", Password: "correct"})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := svc.Delete(entry.ID, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.Delete(entry.ID, "correct"); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := svc.Delete(entry.ID, "correct"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestGuestbookService_DeleteAsAdmin(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewGuestbookService(gdb)

	entry, err := svc.Create(GuestbookInput{Name: "a", Content: "내용", Password: "p"})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if err := svc.DeleteAsAdmin(entry.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty guestbook, got %d entries", len(entries))
	}
}
