package inkpress

import (
	"database/sql"
	"fmt"
	"strings"
)

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.featured_image,
	p.author_id, p.category_id, p.status, p.published_at, p.created_at, p.updated_at,
	c.name, c.slug`

const postFrom = `FROM posts p LEFT JOIN categories c ON c.id = p.category_id`

func scanPost(sc interface{ Scan(...any) error }) (Post, error) {
	var p Post
	var categoryID sql.NullInt64
	var publishedAt sql.NullString
	var catName, catSlug sql.NullString
	err := sc.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage,
		&p.AuthorID, &categoryID, &p.Status, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
		&catName, &catSlug)
	if err != nil {
		return Post{}, err
	}
	if categoryID.Valid {
		id := categoryID.Int64
		p.CategoryID = &id
		if catName.Valid {
			p.Category = &Category{ID: id, Name: catName.String, Slug: catSlug.String}
		}
	}
	p.PublishedAt = publishedAt.String
	p.ReadTime = ReadTime(p.Content)
	p.Tags = []Tag{}
	return p, nil
}

// postFilters translates a PostQuery into a WHERE clause. Tag filtering goes
// through the join table in the same query rather than a second round trip.
func postFilters(q PostQuery, publishedOnly bool) (string, []any) {
	var conds []string
	var args []any
	if publishedOnly {
		conds = append(conds, "p.status = ?")
		args = append(args, StatusPublished)
	} else if q.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, q.Status)
	}
	if q.CategorySlug != "" {
		conds = append(conds, "c.slug = ?")
		args = append(args, q.CategorySlug)
	}
	if q.TagSlug != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = ?)`)
		args = append(args, q.TagSlug)
	}
	if q.Search != "" {
		like := "%" + escapeLike(q.Search) + "%"
		conds = append(conds, `(p.title LIKE ? ESCAPE '\' OR p.excerpt LIKE ? ESCAPE '\' OR p.content LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) listPosts(q PostQuery, publishedOnly bool, orderBy string) (PostPage, error) {
	where, args := postFilters(q, publishedOnly)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", postFrom, where)
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return PostPage{}, err
	}

	limit, offset := normalizePage(q.Page, q.PageSize)
	query := fmt.Sprintf("SELECT %s %s %s ORDER BY %s LIMIT ? OFFSET ?", postColumns, postFrom, where, orderBy)
	rows, err := s.db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return PostPage{}, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return PostPage{}, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return PostPage{}, err
	}
	if err := s.attachTags(posts); err != nil {
		return PostPage{}, err
	}
	return PostPage{Posts: posts, Total: total}, nil
}

// ListPublishedPosts returns one page of published posts ordered by publish
// time descending, with category and tag sets attached.
func (s *Store) ListPublishedPosts(q PostQuery) (PostPage, error) {
	return s.listPosts(q, true, "p.published_at DESC")
}

// ListAdminPosts returns one page of posts regardless of status, ordered by
// creation time descending, optionally filtered by status and search text.
func (s *Store) ListAdminPosts(q PostQuery) (PostPage, error) {
	return s.listPosts(q, false, "p.created_at DESC")
}

// GetPostBySlug returns a single published post with category and tags.
func (s *Store) GetPostBySlug(slug string) (Post, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.slug = ? AND p.status = ?", postColumns, postFrom)
	p, err := scanPost(s.db.QueryRow(query, slug, StatusPublished))
	if err != nil {
		return Post{}, err
	}
	posts := []Post{p}
	if err := s.attachTags(posts); err != nil {
		return Post{}, err
	}
	return posts[0], nil
}

// GetPostAny returns a post by id regardless of published status (for admin).
func (s *Store) GetPostAny(id int64) (Post, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = ?", postColumns, postFrom)
	p, err := scanPost(s.db.QueryRow(query, id))
	if err != nil {
		return Post{}, err
	}
	posts := []Post{p}
	if err := s.attachTags(posts); err != nil {
		return Post{}, err
	}
	return posts[0], nil
}

// attachTags fills the Tags slice for each post with one grouped query.
func (s *Store) attachTags(posts []Post) error {
	if len(posts) == 0 {
		return nil
	}
	index := make(map[int64]*Post, len(posts))
	placeholders := make([]string, 0, len(posts))
	args := make([]any, 0, len(posts))
	for i := range posts {
		index[posts[i].ID] = &posts[i]
		placeholders = append(placeholders, "?")
		args = append(args, posts[i].ID)
	}
	query := fmt.Sprintf(`SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (%s) ORDER BY t.name`, strings.Join(placeholders, ","))
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var postID int64
		var t Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return err
		}
		if p, ok := index[postID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}

// CreatePost inserts a post and its tag associations in one transaction.
// The slug defaults to the slugified title; a post created as published is
// stamped with a publish time immediately.
func (s *Store) CreatePost(p *Post, tagIDs []int64) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	ts := now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Status == StatusPublished {
		p.PublishedAt = ts
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO posts
		(title, slug, excerpt, content, featured_image, author_id, category_id, status, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.AuthorID,
		p.CategoryID, p.Status, nullable(p.PublishedAt), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	if err := replaceTags(tx, p.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdatePost rewrites a post row and reconciles its tag associations in one
// transaction. The first transition to published stamps the publish time;
// later updates never touch it, even if the status reverts to draft.
func (s *Store) UpdatePost(p *Post, tagIDs []int64) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Read the current publish time inside the transaction so the
	// stamp-once decision and the write see the same row.
	var existingPublishedAt sql.NullString
	if err := tx.QueryRow(`SELECT published_at FROM posts WHERE id = ?`, p.ID).Scan(&existingPublishedAt); err != nil {
		return err
	}
	p.PublishedAt = existingPublishedAt.String
	p.UpdatedAt = now()
	if p.Status == StatusPublished && p.PublishedAt == "" {
		p.PublishedAt = p.UpdatedAt
	}

	if _, err := tx.Exec(`UPDATE posts SET
		title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?,
		category_id = ?, status = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage,
		p.CategoryID, p.Status, nullable(p.PublishedAt), p.UpdatedAt, p.ID); err != nil {
		return err
	}
	if err := replaceTags(tx, p.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// DeletePost removes a post; comments and join rows cascade.
func (s *Store) DeletePost(id int64) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}

// replaceTags implements delete-all-then-reinsert reconciliation of the
// join table within the caller's transaction.
func replaceTags(tx *sql.Tx, postID int64, tagIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO post_tags (post_id, tag_id) VALUES (?, ?)`, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// nullable maps an empty string to NULL for timestamp columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
