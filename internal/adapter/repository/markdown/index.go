package markdown

import (
	"fmt"
	"sort"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

// Index is an immutable snapshot of the loaded content tree.
// Posts handed out by the index are shared and must not be modified.
type Index struct {
	posts  map[string][]*entity.Post
	bySlug map[string]map[string]*entity.Post
}

func newIndex() *Index {
	return &Index{
		posts:  make(map[string][]*entity.Post),
		bySlug: make(map[string]map[string]*entity.Post),
	}
}

func (ix *Index) add(post *entity.Post) error {
	slugs, ok := ix.bySlug[post.Collection]
	if !ok {
		slugs = make(map[string]*entity.Post)
		ix.bySlug[post.Collection] = slugs
	}

	if prev, ok := slugs[post.Slug]; ok {
		return fmt.Errorf("%w %q in %s: %s and %s",
			ErrDuplicateSlug, post.Slug, post.Collection, prev.SourcePath, post.SourcePath)
	}

	slugs[post.Slug] = post
	ix.posts[post.Collection] = append(ix.posts[post.Collection], post)

	return nil
}

func (ix *Index) sort() {
	for _, posts := range ix.posts {
		sortPosts(posts)
	}
}

// Collections returns every collection with its post count, ordered by name.
func (ix *Index) Collections() []entity.CollectionInfo {
	infos := make([]entity.CollectionInfo, 0, len(ix.posts))
	for name, posts := range ix.posts {
		infos = append(infos, entity.CollectionInfo{Name: name, Count: len(posts)})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

// Posts returns the posts of a collection, newest first.
func (ix *Index) Posts(collection string) ([]*entity.Post, bool) {
	posts, ok := ix.posts[collection]
	return posts, ok
}

// Post returns a single post by collection and slug.
func (ix *Index) Post(collection, slug string) (*entity.Post, bool) {
	post, ok := ix.bySlug[collection][slug]
	return post, ok
}

// Len returns the total number of posts across all collections.
func (ix *Index) Len() int {
	n := 0
	for _, posts := range ix.posts {
		n += len(posts)
	}
	return n
}
