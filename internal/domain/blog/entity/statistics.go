package entity

// AuthorBlogs pairs an author with the number of blogs attributed to them
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with the likes summed over their blogs
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int64  `json:"likes"`
}

// BlogStatistics represents aggregate statistics over a set of blogs.
// Nil fields mean there were no blogs to aggregate.
type BlogStatistics struct {
	TotalBlogs   int          `json:"total_blogs"`
	TotalLikes   int64        `json:"total_likes"`
	FavoriteBlog *Blog        `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}
