package verification

import (
	"github.com/whisperrid/backend/internal/models"
	"github.com/whisperrid/backend/internal/utils"
)

// DefaultPageSize is the list's initial rows-per-page
const DefaultPageSize = 10

// PageSizeOptions are the rows-per-page choices offered by the list
var PageSizeOptions = []int{5, 10, 25}

// IsValidPageSize reports whether size is one of PageSizeOptions
func IsValidPageSize(size int) bool {
	for _, option := range PageSizeOptions {
		if option == size {
			return true
		}
	}
	return false
}

// ListQuery is the filter and pagination state of the verifications list
type ListQuery struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// Page is one window of filtered cases
type Page struct {
	Items           []models.VerificationCase `json:"items"`
	Total           int                       `json:"total"`
	Page            int                       `json:"page"`
	PageSize        int                       `json:"pageSize"`
	PageSizeOptions []int                     `json:"pageSizeOptions"`
}

// MatchesSearch reports whether term is a case-insensitive substring of the user's
// first name, last name or email. An empty term matches everything.
func MatchesSearch(c models.VerificationCase, term string) bool {
	if term == "" {
		return true
	}
	return utils.ContainsFoldAny(term, c.User.FirstName, c.User.LastName, c.User.Email)
}

// MatchesStatus reports whether the case passes the status filter. "All" and the
// empty string match everything; anything else must equal the status label exactly.
func MatchesStatus(c models.VerificationCase, status string) bool {
	if status == "" || status == models.StatusFilterAll {
		return true
	}
	return string(c.Status) == status
}

// Filter returns the cases matching both the search term and the status filter,
// preserving their original order
func Filter(cases []models.VerificationCase, search, status string) []models.VerificationCase {
	out := make([]models.VerificationCase, 0, len(cases))
	for _, c := range cases {
		if MatchesSearch(c, search) && MatchesStatus(c, status) {
			out = append(out, c)
		}
	}
	return out
}

// Paginate returns the window [page*size, min(len, page*size+size)).
// Out-of-range pages yield an empty window.
func Paginate(cases []models.VerificationCase, page, size int) []models.VerificationCase {
	if size <= 0 {
		size = DefaultPageSize
	}
	// bound page before multiplying so page*size cannot overflow
	if page < 0 || len(cases) == 0 || page > (len(cases)-1)/size {
		return []models.VerificationCase{}
	}
	start := page * size
	end := len(cases)
	if size < end-start {
		end = start + size
	}
	return cases[start:end]
}

// Query filters then paginates. Unsupported page sizes fall back to DefaultPageSize.
func Query(cases []models.VerificationCase, q ListQuery) Page {
	size := q.PageSize
	if !IsValidPageSize(size) {
		size = DefaultPageSize
	}

	filtered := Filter(cases, q.Search, q.Status)
	return Page{
		Items:           Paginate(filtered, q.Page, size),
		Total:           len(filtered),
		Page:            q.Page,
		PageSize:        size,
		PageSizeOptions: PageSizeOptions,
	}
}

// ListState tracks a viewer's position in the list between requests
type ListState struct {
	Search   string
	Status   string
	page     int
	pageSize int
}

// NewListState starts on page 0 with the default page size and no filters
func NewListState() *ListState {
	return &ListState{Status: models.StatusFilterAll, pageSize: DefaultPageSize}
}

// Page returns the current zero-based page index
func (s *ListState) Page() int { return s.page }

// PageSize returns the current rows-per-page
func (s *ListState) PageSize() int { return s.pageSize }

// SetPage moves to page p, keeping the page size
func (s *ListState) SetPage(p int) {
	if p < 0 {
		p = 0
	}
	s.page = p
}

// SetPageSize changes rows-per-page and returns to the first page so the viewer is
// never stranded past the end
func (s *ListState) SetPageSize(size int) {
	if !IsValidPageSize(size) {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.page = 0
}

// Query returns the ListQuery for the current state
func (s *ListState) Query() ListQuery {
	return ListQuery{Search: s.Search, Status: s.Status, Page: s.page, PageSize: s.pageSize}
}
