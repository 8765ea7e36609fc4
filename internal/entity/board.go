package entity

import (
	"errors"
	"time"
)

// ErrUpstream is returned when a third-party API fails or answers with an unexpected payload.
var ErrUpstream = errors.New("upstream service error")

// NoStatusColumn is the column for board items without a status value.
const NoStatusColumn = "No Status"

// ProjectBoard is a normalized snapshot of a GitHub project board.
type ProjectBoard struct {
	Title     string
	URL       string
	Columns   []BoardColumn
	FetchedAt time.Time
	Stale     bool
}

// BoardColumn groups the board items sharing the same status.
type BoardColumn struct {
	Name  string
	Items []BoardItem
}

// BoardItem is one card on the project board.
type BoardItem struct {
	ID        string
	Title     string
	URL       string
	Type      string // ISSUE, PULL_REQUEST or DRAFT_ISSUE
	Status    string
	Assignees []string
	Labels    []string
}
