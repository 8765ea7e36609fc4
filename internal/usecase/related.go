package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const (
	DefaultRelatedLimit = 3
	MaxRelatedLimit     = 10

	categoryWeight  = 5
	sharedTagWeight = 3

	recentWindow  = 30 * 24 * time.Hour
	relatedWindow = 180 * 24 * time.Hour
)

type scoredPost struct {
	post  *entity.Post
	score int
}

// relevanceScore rates how related candidate is to target:
// a matching category, every shared tag and closeness in publication date all add points.
func relevanceScore(target, candidate *entity.Post) int {
	score := 0

	if target.Category != "" && strings.EqualFold(target.Category, candidate.Category) {
		score += categoryWeight
	}

	for _, tag := range target.Tags {
		if candidate.HasTag(tag) {
			score += sharedTagWeight
		}
	}

	return score + recencyBonus(target.Date, candidate.Date)
}

func recencyBonus(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}

	d := a.Sub(b)
	if d < 0 {
		d = -d
	}

	switch {
	case d <= recentWindow:
		return 2
	case d <= relatedWindow:
		return 1
	default:
		return 0
	}
}

// RankRelated returns up to limit posts from corpus ordered by relevance to target.
// The target itself and candidates with a zero score are left out.
func RankRelated(target *entity.Post, corpus []*entity.Post, limit int) []*entity.Post {
	if limit <= 0 {
		return []*entity.Post{}
	}

	scored := make([]scoredPost, 0, len(corpus))
	for _, p := range corpus {
		if p.Slug == target.Slug && p.Collection == target.Collection {
			continue
		}
		if s := relevanceScore(target, p); s > 0 {
			scored = append(scored, scoredPost{post: p, score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.post.Date.Equal(b.post.Date) {
			return a.post.Date.After(b.post.Date)
		}
		return a.post.Slug < b.post.Slug
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	related := make([]*entity.Post, len(scored))
	for i, s := range scored {
		related[i] = s.post
	}

	return related
}
