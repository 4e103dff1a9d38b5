package inkpress

// CreateComment inserts a reader comment. New comments are unapproved until
// an admin approves them.
func (s *Store) CreateComment(c *Comment) error {
	c.Approved = false
	c.CreatedAt = now()
	res, err := s.db.Exec(`INSERT INTO comments (post_id, author_name, author_email, content, approved, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`,
		c.PostID, c.AuthorName, c.AuthorEmail, c.Content, c.CreatedAt)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// ListCommentsForPost returns approved comments for a post, oldest first.
func (s *Store) ListCommentsForPost(postID int64) ([]Comment, error) {
	rows, err := s.db.Query(`SELECT id, post_id, author_name, author_email, content, approved, created_at
		FROM comments WHERE post_id = ? AND approved = 1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Approved, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// ListAdminComments returns one page of comments, newest first, optionally
// filtered by approval state. approvedFilter is nil for "all".
func (s *Store) ListAdminComments(page, pageSize int, approvedFilter *bool) (CommentPage, error) {
	where := ""
	var args []any
	if approvedFilter != nil {
		where = "WHERE c.approved = ?"
		if *approvedFilter {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM comments c `+where, args...).Scan(&total); err != nil {
		return CommentPage{}, err
	}

	limit, offset := normalizePage(page, pageSize)
	rows, err := s.db.Query(`SELECT c.id, c.post_id, p.title, c.author_name, c.author_email, c.content, c.approved, c.created_at
		FROM comments c JOIN posts p ON p.id = c.post_id `+where+`
		ORDER BY c.created_at DESC LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return CommentPage{}, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.PostTitle, &c.AuthorName, &c.AuthorEmail, &c.Content, &c.Approved, &c.CreatedAt); err != nil {
			return CommentPage{}, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return CommentPage{}, err
	}
	return CommentPage{Comments: comments, Total: total}, nil
}

// ApproveComment marks a comment as approved.
func (s *Store) ApproveComment(id int64) error {
	res, err := s.db.Exec(`UPDATE comments SET approved = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(id int64) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	return err
}
