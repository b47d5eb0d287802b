package resource

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
)

// ErrStale is returned by Load when a newer Load superseded the call and its
// response was dropped.
var ErrStale = errors.New("stale response discarded")

// StatusAll disables the status filter.
const StatusAll = "all"

type counter interface {
	Inc()
}

// Table holds the view state of one paginated resource page: the loaded
// page, the search query, the status filter and the open detail.
type Table[T any] struct {
	mu sync.Mutex

	desc  Descriptor[T]
	stale counter
	now   func() time.Time

	seq      uint64
	inFlight int

	loaded     bool
	loadedAt   time.Time
	req        domain.PageRequest
	items      []T
	pagination domain.Pagination

	query    string
	status   string
	selected string
	errMsg   string
}

// NewTable creates an empty table. stale may be nil.
func NewTable[T any](d Descriptor[T], stale counter) *Table[T] {
	return &Table[T]{desc: d, stale: stale, now: time.Now, status: StatusAll}
}

// Rebind swaps the descriptor, keeping loaded state. Fetch closures carry the
// caller's session, so handlers rebind on every request.
func (t *Table[T]) Rebind(d Descriptor[T]) {
	t.mu.Lock()
	t.desc = d
	t.mu.Unlock()
}

// Load fetches one page. Only the latest call may write state: an earlier
// call that returns after a newer one started gets ErrStale.
func (t *Table[T]) Load(ctx context.Context, pr domain.PageRequest) error {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.inFlight++
	fetch := t.desc.Fetch
	t.mu.Unlock()

	page, err := fetch(ctx, pr)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight--

	if seq != t.seq {
		if t.stale != nil {
			t.stale.Inc()
		}
		return ErrStale
	}
	if err != nil {
		t.errMsg = apperr.Message(err)
		return err
	}

	t.items = page.Data
	t.pagination = page.Pagination
	if t.pagination.Page == 0 {
		t.pagination.Page = pr.Page
	}
	if t.pagination.Limit == 0 {
		t.pagination.Limit = pr.Limit
	}
	t.req = pr
	t.loaded = true
	t.loadedAt = t.now()
	t.errMsg = ""
	if t.selected != "" {
		if _, ok := t.findLocked(t.selected); !ok {
			t.selected = ""
		}
	}
	return nil
}

// NeedsLoad reports whether pr differs from the loaded page.
func (t *Table[T]) NeedsLoad(pr domain.PageRequest) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.loaded || t.req != pr
}

// SetQuery sets the free-text filter.
func (t *Table[T]) SetQuery(q string) {
	t.mu.Lock()
	t.query = strings.TrimSpace(q)
	t.mu.Unlock()
}

// SetStatus sets the status filter. Empty selects StatusAll.
func (t *Table[T]) SetStatus(s string) {
	if s == "" {
		s = StatusAll
	}
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Filtered returns the loaded items matching the query and status filter.
// Only the current page is searched; the API has no search parameter.
func (t *Table[T]) Filtered() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filteredLocked()
}

func (t *Table[T]) filteredLocked() []T {
	q := strings.ToLower(t.query)
	out := make([]T, 0, len(t.items))
	for _, it := range t.items {
		if t.status != StatusAll && !strings.EqualFold(t.desc.status(it), t.status) {
			continue
		}
		if q != "" && !matches(t.desc.SearchFields(it), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(fields []string, lowerQuery string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

// Select opens the detail of the loaded entity with id.
func (t *Table[T]) Select(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.findLocked(id); !ok {
		return false
	}
	t.selected = id
	return true
}

// Selected returns the entity whose detail is open.
func (t *Table[T]) Selected() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == "" {
		var zero T
		return zero, false
	}
	return t.findLocked(t.selected)
}

// CloseDetail closes the detail view.
func (t *Table[T]) CloseDetail() {
	t.mu.Lock()
	t.selected = ""
	t.mu.Unlock()
}

// Mutate runs call against the loaded entity with id. The entity returned by
// call replaces the loaded one only after call succeeds, so the list row and
// the open detail always agree with what the server confirmed. On failure the
// error message is recorded and the loaded entity is left as it was.
func (t *Table[T]) Mutate(ctx context.Context, id string, call func(context.Context, T) (T, error)) (T, error) {
	t.mu.Lock()
	cur, ok := t.findLocked(id)
	t.mu.Unlock()
	if !ok {
		var zero T
		return zero, apperr.NotFound
	}

	updated, err := call(ctx, cur)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.errMsg = apperr.Message(err)
		var zero T
		return zero, err
	}
	for i := range t.items {
		if t.desc.ID(t.items[i]) == id {
			t.items[i] = updated
		}
	}
	t.errMsg = ""
	return updated, nil
}

// SetError records a message for the error banner.
func (t *Table[T]) SetError(msg string) {
	t.mu.Lock()
	t.errMsg = msg
	t.mu.Unlock()
}

// HasPrev is false only on the first page.
func (t *Table[T]) HasPrev() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasPrevLocked()
}

// HasNext is false on the last page, or when there are no pages.
func (t *Table[T]) HasNext() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasNextLocked()
}

func (t *Table[T]) hasPrevLocked() bool { return t.pageLocked() > 1 }

func (t *Table[T]) hasNextLocked() bool { return t.pageLocked() < t.pagination.TotalPages }

func (t *Table[T]) pageLocked() int {
	if t.pagination.Page > 0 {
		return t.pagination.Page
	}
	if t.req.Page > 0 {
		return t.req.Page
	}
	return 1
}

func (t *Table[T]) findLocked(id string) (T, bool) {
	for _, it := range t.items {
		if t.desc.ID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// State is an immutable copy of a table for rendering.
type State[T any] struct {
	Resource   string            `json:"resource"`
	Items      []T               `json:"items"`
	Total      int               `json:"totalLoaded"`
	Pagination domain.Pagination `json:"pagination"`
	Query      string            `json:"query,omitempty"`
	Status     string            `json:"status"`
	Selected   *T                `json:"selected,omitempty"`
	Loading    bool              `json:"loading"`
	Loaded     bool              `json:"loaded"`
	LoadedAt   time.Time         `json:"loadedAt"`
	Error      string            `json:"error,omitempty"`
	HasPrev    bool              `json:"hasPrev"`
	HasNext    bool              `json:"hasNext"`
}

// Snapshot returns the current state with the filter applied.
func (t *Table[T]) Snapshot() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := State[T]{
		Resource:   t.desc.Name,
		Items:      t.filteredLocked(),
		Total:      len(t.items),
		Pagination: t.pagination,
		Query:      t.query,
		Status:     t.status,
		Loading:    t.inFlight > 0,
		Loaded:     t.loaded,
		LoadedAt:   t.loadedAt,
		Error:      t.errMsg,
		HasPrev:    t.hasPrevLocked(),
		HasNext:    t.hasNextLocked(),
	}
	s.Pagination.Page = t.pageLocked()
	if t.selected != "" {
		if sel, ok := t.findLocked(t.selected); ok {
			s.Selected = &sel
		}
	}
	return s
}
