package inkpress

import "testing"

func setupPostWithComments(t *testing.T, s *Store) Post {
	t.Helper()
	author := mustCreateAuthor(t, s)
	post := Post{Title: "Discussed", AuthorID: author.ID, Status: StatusPublished}
	if err := s.CreatePost(&post, nil); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	return post
}

func TestNewCommentsStartUnapproved(t *testing.T) {
	s := setupTestStore(t)
	post := setupPostWithComments(t, s)

	c := Comment{PostID: post.ID, AuthorName: "Reader", AuthorEmail: "r@example.com", Content: "First!", Approved: true}
	if err := s.CreateComment(&c); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	// Approved cannot be smuggled in at creation time.
	if c.Approved {
		t.Error("new comment should start unapproved")
	}

	visible, err := s.ListCommentsForPost(post.ID)
	if err != nil {
		t.Fatalf("ListCommentsForPost failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("unapproved comment visible on public view: %v", visible)
	}
}

func TestApproveCommentMakesItVisible(t *testing.T) {
	s := setupTestStore(t)
	post := setupPostWithComments(t, s)

	c := Comment{PostID: post.ID, AuthorName: "Reader", Content: "Nice post"}
	if err := s.CreateComment(&c); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if err := s.ApproveComment(c.ID); err != nil {
		t.Fatalf("ApproveComment failed: %v", err)
	}

	visible, err := s.ListCommentsForPost(post.ID)
	if err != nil {
		t.Fatalf("ListCommentsForPost failed: %v", err)
	}
	if len(visible) != 1 || !visible[0].Approved {
		t.Errorf("approved comment missing from public view: %v", visible)
	}
}

func TestApproveMissingComment(t *testing.T) {
	s := setupTestStore(t)

	if err := s.ApproveComment(12345); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListAdminCommentsFilterAndPaginate(t *testing.T) {
	s := setupTestStore(t)
	post := setupPostWithComments(t, s)

	var ids []int64
	for i := 0; i < 5; i++ {
		c := Comment{PostID: post.ID, AuthorName: "Reader", Content: "comment"}
		if err := s.CreateComment(&c); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
		ids = append(ids, c.ID)
	}
	for _, id := range ids[:2] {
		if err := s.ApproveComment(id); err != nil {
			t.Fatalf("ApproveComment failed: %v", err)
		}
	}

	all, err := s.ListAdminComments(1, 10, nil)
	if err != nil {
		t.Fatalf("ListAdminComments failed: %v", err)
	}
	if all.Total != 5 {
		t.Errorf("all Total = %d, want 5", all.Total)
	}
	if all.Comments[0].PostTitle != "Discussed" {
		t.Errorf("PostTitle = %q, want Discussed", all.Comments[0].PostTitle)
	}

	approved := true
	onlyApproved, err := s.ListAdminComments(1, 10, &approved)
	if err != nil {
		t.Fatalf("ListAdminComments(approved) failed: %v", err)
	}
	if onlyApproved.Total != 2 {
		t.Errorf("approved Total = %d, want 2", onlyApproved.Total)
	}

	pending := false
	onlyPending, err := s.ListAdminComments(1, 2, &pending)
	if err != nil {
		t.Fatalf("ListAdminComments(pending) failed: %v", err)
	}
	if onlyPending.Total != 3 {
		t.Errorf("pending Total = %d, want 3", onlyPending.Total)
	}
	if len(onlyPending.Comments) != 2 {
		t.Errorf("pending page size = %d, want 2", len(onlyPending.Comments))
	}
}

func TestDeleteComment(t *testing.T) {
	s := setupTestStore(t)
	post := setupPostWithComments(t, s)

	c := Comment{PostID: post.ID, AuthorName: "Reader", Content: "bye"}
	if err := s.CreateComment(&c); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if err := s.DeleteComment(c.ID); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	page, err := s.ListAdminComments(1, 10, nil)
	if err != nil {
		t.Fatalf("ListAdminComments failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("comment not deleted, total = %d", page.Total)
	}
}
