package api

// Resource paths relative to the client's base URL.
const (
	ResourceUsers = "users"
	ResourcePosts = "posts"
)

// User is a record of the users resource. Unknown fields are ignored.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Post is a record of the posts resource.
type Post struct {
	ID     int64  `json:"id,omitempty"`
	UserID int64  `json:"userId,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
}
