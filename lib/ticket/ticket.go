// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TitleMaxLength is the service-enforced upper bound on ticket titles.
// The form surfaces it locally (live character count, hard input cap)
// so the user never composes a title the service will reject.
const TitleMaxLength = 200

// Category classifies what a ticket is about.
type Category string

// Category wire values.
const (
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryAccount   Category = "account"
	CategoryGeneral   Category = "general"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral}
}

// Valid reports whether the category is a member of the enumerated set.
func (category Category) Valid() bool {
	switch category {
	case CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral:
		return true
	}
	return false
}

// Priority expresses urgency, from low to critical.
type Priority string

// Priority wire values.
const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities returns all priorities in ascending urgency order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Valid reports whether the priority is a member of the enumerated set.
func (priority Priority) Valid() bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Status is the ticket lifecycle state. The service imposes no
// transition constraints: any status may move to any other, including
// closed back to open. The client preserves that permissiveness.
type Status string

// Status wire values.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses returns all statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// Valid reports whether the status is a member of the enumerated set.
func (status Status) Valid() bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Label returns the human-readable form of the status ("in_progress"
// renders as "In Progress").
func (status Status) Label() string {
	words := strings.Split(string(status), "_")
	for index, word := range words {
		if word == "" {
			continue
		}
		words[index] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Ticket is the persisted entity owned by the ticket service. The
// client only ever holds transient copies: identifiers and timestamps
// are service-assigned and immutable.
type Ticket struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is the client-local, mutable ticket being composed. It mirrors
// Ticket minus the service-assigned fields; status is implicitly
// "open" by omission on create.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
}

// NewDraft returns an empty draft with well-formed defaults. General
// and medium match the service's suggestion fallbacks, so even a
// never-classified draft submits cleanly.
func NewDraft() Draft {
	return Draft{
		Category: CategoryGeneral,
		Priority: PriorityMedium,
	}
}

// Validate checks the draft is submittable. Title and description must
// be non-empty after trimming, the title must fit the service limit,
// and category/priority must be enum members. Called before any
// network traffic; a failing draft never reaches the service.
func (draft Draft) Validate() error {
	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(draft.Title) > TitleMaxLength {
		return fmt.Errorf("title exceeds %d characters", TitleMaxLength)
	}
	if strings.TrimSpace(draft.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if !draft.Category.Valid() {
		return fmt.Errorf("invalid category %q", draft.Category)
	}
	if !draft.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", draft.Priority)
	}
	return nil
}

// Filter is the declarative constraint set for list queries. The zero
// value of each field means "no constraint"; empty fields are omitted
// from the remote query entirely rather than sent as empty strings.
type Filter struct {
	Category Category
	Priority Priority
	Status   Status
	Search   string
}

// IsZero reports whether no constraint is set.
func (filter Filter) IsZero() bool {
	return filter == Filter{}
}

// Suggestion is the classification boundary's proposed category and
// priority for a drafted description. Transient: used once to pre-fill
// a Draft, never persisted.
type Suggestion struct {
	Category   Category `json:"suggested_category"`
	Priority   Priority `json:"suggested_priority"`
	Confidence float64  `json:"confidence,omitempty"`
}

// Stats is the aggregate view served by GET tickets/stats. Breakdown
// maps go from each enum value to its count; values absent from the
// service's response simply have no key.
type Stats struct {
	Total      int              `json:"total_tickets"`
	Open       int              `json:"open_tickets"`
	AvgPerDay  float64          `json:"avg_tickets_per_day"`
	ByPriority map[Priority]int `json:"priority_breakdown"`
	ByCategory map[Category]int `json:"category_breakdown"`
	ByStatus   map[Status]int   `json:"status_breakdown"`
}
