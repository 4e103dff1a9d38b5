package inkpress

import (
	"golang.org/x/crypto/bcrypt"
)

// CreateUser inserts a user with a bcrypt-hashed password.
func (s *Store) CreateUser(u *User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	ts := now()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	res, err := s.db.Exec(`INSERT INTO users (username, password_hash, email, full_name, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Email, u.FullName, boolToInt(u.IsAdmin), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

// UpdateUser rewrites a user row. An empty password keeps the current hash.
func (s *Store) UpdateUser(u *User, password string) error {
	u.UpdatedAt = now()
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.PasswordHash = string(hash)
		_, err = s.db.Exec(`UPDATE users SET username = ?, password_hash = ?, email = ?, full_name = ?, is_admin = ?, updated_at = ? WHERE id = ?`,
			u.Username, u.PasswordHash, u.Email, u.FullName, boolToInt(u.IsAdmin), u.UpdatedAt, u.ID)
		return err
	}
	_, err := s.db.Exec(`UPDATE users SET username = ?, email = ?, full_name = ?, is_admin = ?, updated_at = ? WHERE id = ?`,
		u.Username, u.Email, u.FullName, boolToInt(u.IsAdmin), u.UpdatedAt, u.ID)
	return err
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(id int64) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

// GetUser returns a user by id.
func (s *Store) GetUser(id int64) (User, error) {
	return s.scanUser(`SELECT id, username, password_hash, email, full_name, is_admin, created_at, updated_at FROM users WHERE id = ?`, id)
}

// GetUserByUsername returns a user by username.
func (s *Store) GetUserByUsername(username string) (User, error) {
	return s.scanUser(`SELECT id, username, password_hash, email, full_name, is_admin, created_at, updated_at FROM users WHERE username = ?`, username)
}

func (s *Store) scanUser(query string, arg any) (User, error) {
	var u User
	var isAdmin int
	err := s.db.QueryRow(query, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &isAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	u.IsAdmin = isAdmin == 1
	return u, nil
}

// ListUsers returns all users ordered by username.
func (s *Store) ListUsers() ([]User, error) {
	rows, err := s.db.Query(`SELECT id, username, password_hash, email, full_name, is_admin, created_at, updated_at FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		var isAdmin int
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName, &isAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.IsAdmin = isAdmin == 1
		users = append(users, u)
	}
	return users, rows.Err()
}

// Authenticate checks a username/password pair against the stored bcrypt
// hash. It returns ErrNotFound for both unknown usernames and wrong
// passwords so callers cannot distinguish the two.
func (s *Store) Authenticate(username, password string) (User, error) {
	u, err := s.GetUserByUsername(username)
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// DashboardStats returns the counts shown on the admin dashboard.
func (s *Store) DashboardStats() (DashboardStats, error) {
	var st DashboardStats
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM posts WHERE status = 'published'),
		(SELECT COUNT(*) FROM posts WHERE status = 'draft'),
		(SELECT COUNT(*) FROM categories),
		(SELECT COUNT(*) FROM tags),
		(SELECT COUNT(*) FROM comments WHERE approved = 0),
		(SELECT COUNT(*) FROM comments)`).
		Scan(&st.PublishedPosts, &st.DraftPosts, &st.Categories, &st.Tags, &st.PendingComments, &st.TotalComments)
	return st, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
