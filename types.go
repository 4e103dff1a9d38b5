package inkpress

// Post is the core content type. PublishedAt is empty until the post first
// transitions to published, and is never cleared afterwards even if the
// status reverts to draft.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	AuthorID      int64     `json:"author_id"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	Category      *Category `json:"category,omitempty"`
	Status        string    `json:"status"`
	PublishedAt   string    `json:"published_at,omitempty"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
	Tags          []Tag     `json:"tags"`
	ReadTime      int       `json:"read_time"`
}

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   int    `json:"post_count,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"post_count,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Comment holds a reader comment. Approved defaults to false; only approved
// comments are visible on public views.
type Comment struct {
	ID          int64  `json:"id"`
	PostID      int64  `json:"post_id"`
	PostTitle   string `json:"post_title,omitempty"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Content     string `json:"content"`
	Approved    bool   `json:"approved"`
	CreatedAt   string `json:"created_at"`
}

// User is an admin back-office account. The bcrypt hash never leaves the
// store layer and is excluded from JSON.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	IsAdmin      bool   `json:"is_admin"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Image is metadata for an uploaded file living under the static uploads dir.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploaded_at"`
	URL          string `json:"url,omitempty"`
}

// PostQuery carries listing filters. Zero values mean "no filter";
// Page and PageSize are normalized by the store.
type PostQuery struct {
	Page         int
	PageSize     int
	CategorySlug string
	TagSlug      string
	Search       string
	Status       string // admin listings only
}

// PostPage is one page of posts plus the total match count, so callers can
// derive page numbers.
type PostPage struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// CommentPage is one page of comments plus the total match count.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

// DashboardStats backs the admin dashboard overview.
type DashboardStats struct {
	PublishedPosts  int `json:"published_posts"`
	DraftPosts      int `json:"draft_posts"`
	Categories      int `json:"categories"`
	Tags            int `json:"tags"`
	PendingComments int `json:"pending_comments"`
	TotalComments   int `json:"total_comments"`
}
