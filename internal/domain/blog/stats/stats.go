// Package stats computes aggregate views over a list of blogs.
//
// Every function is pure: the input slice is never modified and returned
// records never share memory with it. Functions that select a single winner
// report false on empty input instead of returning a zero value.
//
// Ties are resolved in input order. FavoriteBlog keeps the earliest blog with
// the maximum likes; MostBlogs and MostLikes keep the author that appears
// first in the input among those sharing the maximum.
package stats

import (
	"slices"

	"github.com/vadim/bloglist/internal/domain/blog/entity"
)

// TotalLikes returns the sum of likes over all blogs
func TotalLikes(blogs []entity.Blog) int64 {
	var total int64
	for i := range blogs {
		total += blogs[i].Likes
	}
	return total
}

// FavoriteBlog returns a copy of the blog with the most likes
func FavoriteBlog(blogs []entity.Blog) (entity.Blog, bool) {
	if len(blogs) == 0 {
		return entity.Blog{}, false
	}

	fav := 0
	for i := 1; i < len(blogs); i++ {
		if blogs[i].Likes > blogs[fav].Likes {
			fav = i
		}
	}

	return clone(blogs[fav]), true
}

// MostBlogs returns the author with the largest number of blogs
func MostBlogs(blogs []entity.Blog) (entity.AuthorBlogs, bool) {
	author, count, ok := maxByAuthor(blogs, func(entity.Blog) int64 { return 1 })
	if !ok {
		return entity.AuthorBlogs{}, false
	}
	return entity.AuthorBlogs{Author: author, Blogs: int(count)}, true
}

// MostLikes returns the author whose blogs have the most likes in total
func MostLikes(blogs []entity.Blog) (entity.AuthorLikes, bool) {
	author, likes, ok := maxByAuthor(blogs, func(b entity.Blog) int64 { return b.Likes })
	if !ok {
		return entity.AuthorLikes{}, false
	}
	return entity.AuthorLikes{Author: author, Likes: likes}, true
}

// Compute bundles all aggregate views into one statistics record
func Compute(blogs []entity.Blog) entity.BlogStatistics {
	st := entity.BlogStatistics{
		TotalBlogs: len(blogs),
		TotalLikes: TotalLikes(blogs),
	}

	if fav, ok := FavoriteBlog(blogs); ok {
		st.FavoriteBlog = &fav
	}
	if mb, ok := MostBlogs(blogs); ok {
		st.MostBlogs = &mb
	}
	if ml, ok := MostLikes(blogs); ok {
		st.MostLikes = &ml
	}

	return st
}

// maxByAuthor sums weight(blog) per author in one pass and returns the author
// with the largest sum. Authors are kept in first-seen order so ties go to
// the earliest author.
func maxByAuthor(blogs []entity.Blog, weight func(entity.Blog) int64) (string, int64, bool) {
	if len(blogs) == 0 {
		return "", 0, false
	}

	sums := make(map[string]int64)
	order := make([]string, 0)
	for i := range blogs {
		a := blogs[i].Author
		if _, seen := sums[a]; !seen {
			order = append(order, a)
		}
		sums[a] += weight(blogs[i])
	}

	best := order[0]
	for _, a := range order[1:] {
		if sums[a] > sums[best] {
			best = a
		}
	}

	return best, sums[best], true
}

func clone(b entity.Blog) entity.Blog {
	out := b
	out.Comments = slices.Clone(b.Comments)
	if b.User != nil {
		u := *b.User
		out.User = &u
	}
	return out
}
