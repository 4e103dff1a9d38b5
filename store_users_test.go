package inkpress

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCreateUserHashesPassword(t *testing.T) {
	s := setupTestStore(t)

	u := User{Username: "alice", Email: "alice@example.com", FullName: "Alice", IsAdmin: true}
	if err := s.CreateUser(&u, "hunter2hunter2"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if u.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Errorf("PasswordHash does not look like bcrypt: %q", u.PasswordHash)
	}
}

func TestAuthenticate(t *testing.T) {
	s := setupTestStore(t)

	u := User{Username: "alice", IsAdmin: true}
	if err := s.CreateUser(&u, "correct horse"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	got, err := s.Authenticate("alice", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID || !got.IsAdmin {
		t.Errorf("Authenticate returned %+v", got)
	}

	if _, err := s.Authenticate("alice", "wrong"); err != ErrNotFound {
		t.Errorf("wrong password: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Authenticate("nobody", "correct horse"); err != ErrNotFound {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	s := setupTestStore(t)

	u := User{Username: "alice"}
	if err := s.CreateUser(&u, "correct horse"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(b)
	if strings.Contains(body, "password") || strings.Contains(body, "$2") {
		t.Errorf("serialized user leaks password material: %s", body)
	}
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	s := setupTestStore(t)

	u := User{Username: "alice"}
	if err := s.CreateUser(&u, "original pass"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	u.FullName = "Alice Renamed"
	if err := s.UpdateUser(&u, ""); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if _, err := s.Authenticate("alice", "original pass"); err != nil {
		t.Errorf("password changed by no-password update: %v", err)
	}

	if err := s.UpdateUser(&u, "new pass"); err != nil {
		t.Fatalf("UpdateUser with password failed: %v", err)
	}
	if _, err := s.Authenticate("alice", "new pass"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := s.Authenticate("alice", "original pass"); err != ErrNotFound {
		t.Errorf("old password still accepted after change")
	}
}

func TestDashboardStats(t *testing.T) {
	s := setupTestStore(t)
	author := mustCreateAuthor(t, s)
	mustCreateCategory(t, s, "News")
	mustCreateTag(t, s, "Go")

	published := Post{Title: "Live", AuthorID: author.ID, Status: StatusPublished}
	if err := s.CreatePost(&published, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	draft := Post{Title: "Pending", AuthorID: author.ID, Status: StatusDraft}
	if err := s.CreatePost(&draft, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	comment := Comment{PostID: published.ID, AuthorName: "Reader", Content: "hi"}
	if err := s.CreateComment(&comment); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	stats, err := s.DashboardStats()
	if err != nil {
		t.Fatalf("DashboardStats failed: %v", err)
	}
	want := DashboardStats{PublishedPosts: 1, DraftPosts: 1, Categories: 1, Tags: 1, PendingComments: 1, TotalComments: 1}
	if stats != want {
		t.Errorf("DashboardStats = %+v, want %+v", stats, want)
	}
}
