package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", "test-key")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_InsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, &AuditReport{
		Industry:    "Retail",
		Revenue:     100000,
		HealthScore: 100,
		LoanProduct: "collateral-free tier A",
		Narrative:   "EXECUTIVE AUDIT SUMMARY: fine.",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty report id")
	}

	reports, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	got := reports[0]
	if got.ID != id {
		t.Errorf("id = %q, want %q", got.ID, id)
	}
	if got.Revenue != 100000 {
		t.Errorf("revenue = %v, want 100000 (decryption round trip)", got.Revenue)
	}
	if got.Industry != "Retail" || got.HealthScore != 100 {
		t.Errorf("unexpected report: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestStore_RevenueEncryptedAtRest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Insert(ctx, &AuditReport{Industry: "Agri", Revenue: 42500}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var stored string
	if err := s.db.QueryRowContext(ctx, "SELECT revenue FROM audit_reports").Scan(&stored); err != nil {
		t.Fatalf("raw query failed: %v", err)
	}
	if strings.Contains(stored, "42500") {
		t.Errorf("revenue stored in cleartext: %q", stored)
	}
}

func TestStore_ListOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := time.Now().UTC().Add(-time.Hour)
	if _, err := s.Insert(ctx, &AuditReport{Industry: "Agri", CreatedAt: old}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := s.Insert(ctx, &AuditReport{Industry: "Retail"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	reports, err := s.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(reports) != 2 || reports[0].Industry != "Retail" {
		t.Errorf("expected newest first, got %+v", reports)
	}
}

func TestOpen_RequiresKey(t *testing.T) {
	if _, err := Open(":memory:", ""); err == nil {
		t.Fatal("expected error for empty encryption key")
	}
}

func TestCipherBox_RoundTrip(t *testing.T) {
	box, err := newCipherBox("passphrase")
	if err != nil {
		t.Fatalf("newCipherBox failed: %v", err)
	}

	sealed, err := box.seal("123456.78")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	plain, err := box.open(sealed)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if plain != "123456.78" {
		t.Errorf("round trip = %q, want %q", plain, "123456.78")
	}

	if _, err := box.open("not base64 at all!!"); err == nil {
		t.Error("expected error for garbage ciphertext")
	}
}
