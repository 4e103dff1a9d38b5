package inkpress

// ListCategories returns all categories ordered by name, with post counts.
func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at,
		(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id) AS post_count
		FROM categories c ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.PostCount); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCategory returns a category by id.
func (s *Store) GetCategory(id int64) (Category, error) {
	var c Category
	err := s.db.QueryRow(`SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCategory inserts a category, defaulting the slug from the name.
func (s *Store) CreateCategory(c *Category) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts
	res, err := s.db.Exec(`INSERT INTO categories (name, slug, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.Slug, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

// UpdateCategory rewrites a category row.
func (s *Store) UpdateCategory(c *Category) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	c.UpdatedAt = now()
	_, err := s.db.Exec(`UPDATE categories SET name = ?, slug = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Slug, c.Description, c.UpdatedAt, c.ID)
	return err
}

// DeleteCategory removes a category; posts referencing it fall back to NULL.
func (s *Store) DeleteCategory(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

// ListTags returns all tags ordered by name, with usage counts. Counts only
// consider join rows whose post still exists.
func (s *Store) ListTags() ([]Tag, error) {
	rows, err := s.db.Query(`SELECT t.id, t.name, t.slug, t.created_at,
		(SELECT COUNT(*) FROM post_tags pt JOIN posts p ON p.id = pt.post_id WHERE pt.tag_id = t.id) AS post_count
		FROM tags t ORDER BY t.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.PostCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTag inserts a tag, defaulting the slug from the name.
func (s *Store) CreateTag(t *Tag) error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	t.CreatedAt = now()
	res, err := s.db.Exec(`INSERT INTO tags (name, slug, created_at) VALUES (?, ?, ?)`,
		t.Name, t.Slug, t.CreatedAt)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

// UpdateTag rewrites a tag row.
func (s *Store) UpdateTag(t *Tag) error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	res, err := s.db.Exec(`UPDATE tags SET name = ?, slug = ? WHERE id = ?`, t.Name, t.Slug, t.ID)
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

// DeleteTag removes a tag. Join rows referencing it are left behind; posts
// are untouched.
func (s *Store) DeleteTag(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = ?`, id)
	return err
}
