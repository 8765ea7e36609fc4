package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type contentRepository interface {
	Collections() []entity.CollectionInfo
	ListByCollection(collection string) ([]*entity.Post, error)
	FindBySlug(collection, slug string) (*entity.Post, error)
}

// ListPostsParams selects one page of a collection, optionally filtered by category and tag.
type ListPostsParams struct {
	Collection string
	Category   string
	Tag        string
	Page       int
	PageSize   int
}

type ContentUseCase struct {
	repo contentRepository
}

func NewContentUseCase(repo contentRepository) *ContentUseCase {
	return &ContentUseCase{repo: repo}
}

func (uc *ContentUseCase) Collections() []entity.CollectionInfo {
	return uc.repo.Collections()
}

func (uc *ContentUseCase) ListPosts(params ListPostsParams) (*entity.Page[*entity.Post], error) {
	const op = "usecase.ContentUseCase.ListPosts"

	posts, err := uc.repo.ListByCollection(params.Collection)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list posts: %w", op, err)
	}

	tag := strings.ToLower(strings.TrimSpace(params.Tag))
	category := strings.TrimSpace(params.Category)

	filtered := posts
	if tag != "" || category != "" {
		filtered = make([]*entity.Post, 0, len(posts))
		for _, p := range posts {
			if category != "" && !strings.EqualFold(p.Category, category) {
				continue
			}
			if tag != "" && !p.HasTag(tag) {
				continue
			}
			filtered = append(filtered, p)
		}
	}

	return paginate(filtered, params.Page, params.PageSize), nil
}

func (uc *ContentUseCase) GetPost(collection, slug string) (*entity.Post, error) {
	const op = "usecase.ContentUseCase.GetPost"

	post, err := uc.repo.FindBySlug(collection, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get post: %w", op, err)
	}

	return post, nil
}

// RelatedPosts ranks the rest of the post's collection by relevance to it.
func (uc *ContentUseCase) RelatedPosts(collection, slug string, limit int) ([]*entity.Post, error) {
	const op = "usecase.ContentUseCase.RelatedPosts"

	post, err := uc.repo.FindBySlug(collection, slug)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get post: %w", op, err)
	}

	corpus, err := uc.repo.ListByCollection(collection)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list posts: %w", op, err)
	}

	switch {
	case limit <= 0:
		limit = DefaultRelatedLimit
	case limit > MaxRelatedLimit:
		limit = MaxRelatedLimit
	}

	return RankRelated(post, corpus, limit), nil
}

func (uc *ContentUseCase) Categories(collection string) ([]entity.TermCount, error) {
	const op = "usecase.ContentUseCase.Categories"

	posts, err := uc.repo.ListByCollection(collection)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list posts: %w", op, err)
	}

	return countTerms(posts, func(p *entity.Post) []string {
		return []string{p.Category}
	}), nil
}

func (uc *ContentUseCase) Tags(collection string) ([]entity.TermCount, error) {
	const op = "usecase.ContentUseCase.Tags"

	posts, err := uc.repo.ListByCollection(collection)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list posts: %w", op, err)
	}

	return countTerms(posts, func(p *entity.Post) []string {
		return p.Tags
	}), nil
}

// countTerms counts terms case-insensitively, keeping the first spelling seen.
func countTerms(posts []*entity.Post, terms func(*entity.Post) []string) []entity.TermCount {
	index := make(map[string]int)
	counts := make([]entity.TermCount, 0)

	for _, p := range posts {
		for _, term := range terms(p) {
			if term == "" {
				continue
			}

			key := strings.ToLower(term)
			if i, ok := index[key]; ok {
				counts[i].Count++
				continue
			}

			index[key] = len(counts)
			counts = append(counts, entity.TermCount{Name: term, Count: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return strings.ToLower(counts[i].Name) < strings.ToLower(counts[j].Name)
	})

	return counts
}
