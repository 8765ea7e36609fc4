package entity

import (
	"errors"
	"time"
)

var (
	// ErrPostNotFound is returned when no post with the requested slug exists in a collection.
	ErrPostNotFound = errors.New("post not found")
	// ErrCollectionNotFound is returned when the requested content collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")
)

// Post is a single markdown content item (blog post, case study, page).
type Post struct {
	Slug        string
	Collection  string
	Title       string
	Date        time.Time
	Category    string
	Tags        []string
	Author      string
	Description string
	Image       string
	Draft       bool
	ReadingTime int // minutes
	Excerpt     string
	HTML        string
	SourcePath  string
}

// HasTag reports whether the post is tagged with tag. Tags are stored lowercased.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CollectionInfo summarises one content collection.
type CollectionInfo struct {
	Name  string
	Count int
}

// TermCount is a category or tag together with the number of posts using it.
type TermCount struct {
	Name  string
	Count int
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}
