package inkpress

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestPublicPostAPI(t *testing.T) {
	a := setupTestApp(t)
	author := mustCreateAuthor(t, a.Store)

	published := Post{Title: "Launch Notes", AuthorID: author.ID, Status: StatusPublished, Excerpt: "we shipped"}
	if err := a.Store.CreatePost(&published, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	draft := Post{Title: "Roadmap", AuthorID: author.ID, Status: StatusDraft}
	if err := a.Store.CreatePost(&draft, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	rec := doJSON(a, http.MethodGet, "/api/posts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/posts = %d", rec.Code)
	}
	var page PostPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad listing response: %v", err)
	}
	if page.Total != 1 || len(page.Posts) != 1 || page.Posts[0].Slug != "launch-notes" {
		t.Errorf("listing = %+v", page)
	}

	rec = doJSON(a, http.MethodGet, "/api/posts/launch-notes", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/posts/launch-notes = %d", rec.Code)
	}

	// Drafts and unknown slugs are both a plain 404, not an error page.
	for _, slug := range []string{"roadmap", "nonexistent"} {
		rec = doJSON(a, http.MethodGet, "/api/posts/"+slug, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET /api/posts/%s = %d, want 404", slug, rec.Code)
		}
	}
}

func TestCommentSubmissionAndModeration(t *testing.T) {
	a := setupTestApp(t)
	author := mustCreateAuthor(t, a.Store)
	admin := User{Username: "moderator", IsAdmin: true}
	if err := a.Store.CreateUser(&admin, "letmein"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	post := Post{Title: "Open Thread", AuthorID: author.ID, Status: StatusPublished}
	if err := a.Store.CreatePost(&post, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	rec := doJSON(a, http.MethodPost, "/api/posts/open-thread/comments",
		`{"author_name":"Reader","author_email":"r@example.com","content":"hello"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment create = %d: %s", rec.Code, rec.Body.String())
	}
	var created Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad comment response: %v", err)
	}
	if created.Approved {
		t.Error("new comment should be unapproved")
	}

	// Invisible until approved.
	rec = doJSON(a, http.MethodGet, "/api/posts/open-thread/comments", "", nil)
	if rec.Body.String() != "[]\n" {
		t.Errorf("public comments before approval = %s", rec.Body.String())
	}

	cookies := mustLogin(t, a, "moderator", "letmein")
	rec = doJSON(a, http.MethodPost, "/api/admin/comments/1/approve", "", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("approve = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(a, http.MethodGet, "/api/posts/open-thread/comments", "", nil)
	var visible []Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &visible); err != nil {
		t.Fatalf("bad comments response: %v", err)
	}
	if len(visible) != 1 {
		t.Errorf("public comments after approval = %v", visible)
	}
}

func TestCommentValidation(t *testing.T) {
	a := setupTestApp(t)
	author := mustCreateAuthor(t, a.Store)
	post := Post{Title: "Strict Thread", AuthorID: author.ID, Status: StatusPublished}
	if err := a.Store.CreatePost(&post, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	cases := []string{
		`{"author_email":"r@example.com","content":"hello"}`,
		`{"author_name":"Reader","author_email":"not-an-email","content":"hello"}`,
		`{"author_name":"Reader","author_email":"r@example.com"}`,
	}
	for _, body := range cases {
		rec := doJSON(a, http.MethodPost, "/api/posts/strict-thread/comments", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s = %d, want 400", body, rec.Code)
		}
	}
}

func TestAdminPostLifecycleOverAPI(t *testing.T) {
	a := setupTestApp(t)
	admin := User{Username: "editor", IsAdmin: true}
	if err := a.Store.CreateUser(&admin, "letmein"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	cookies := mustLogin(t, a, "editor", "letmein")

	rec := doJSON(a, http.MethodPost, "/api/admin/posts", `{"title":"API Born","status":"draft"}`, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created Post
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	if created.Slug != "api-born" || created.PublishedAt != "" {
		t.Errorf("created = %+v", created)
	}
	if created.AuthorID != admin.ID {
		t.Errorf("AuthorID = %d, want signed-in user %d", created.AuthorID, admin.ID)
	}

	// Missing title fails validation before any write.
	rec = doJSON(a, http.MethodPost, "/api/admin/posts", `{"status":"draft"}`, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("create without title = %d, want 400", rec.Code)
	}

	rec = doJSON(a, http.MethodPut, "/api/admin/posts/1", `{"title":"API Born","status":"published"}`, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}
	var updated Post
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("bad update response: %v", err)
	}
	if updated.PublishedAt == "" {
		t.Error("publish over API should stamp PublishedAt")
	}

	rec = doJSON(a, http.MethodGet, "/api/posts/api-born", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("published post not public: %d", rec.Code)
	}

	rec = doJSON(a, http.MethodDelete, "/api/admin/posts/1", "", cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	rec = doJSON(a, http.MethodGet, "/api/posts/api-born", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted post still public: %d", rec.Code)
	}
}

func TestAdminTagUpdateMissing(t *testing.T) {
	a := setupTestApp(t)
	u := User{Username: "admin", IsAdmin: true}
	if err := a.Store.CreateUser(&u, "letmein"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	cookies := mustLogin(t, a, "admin", "letmein")

	rec := doJSON(a, http.MethodPut, "/api/admin/tags/999", `{"name":"Ghost"}`, cookies)
	if rec.Code != http.StatusNotFound {
		t.Errorf("updating missing tag = %d, want 404", rec.Code)
	}
}
