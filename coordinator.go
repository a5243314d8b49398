package termview

import "sync"

// ScrollGranularity selects how far one scroll request moves.
type ScrollGranularity int

const (
	ScrollLine ScrollGranularity = iota
	ScrollPage
)

// ScrollDirection selects which way a scroll request moves.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// ScrollRequest is one queued paging action.
type ScrollRequest struct {
	Granularity ScrollGranularity
	Direction   ScrollDirection
}

// ResizeRequest is one queued viewport size change.
type ResizeRequest struct {
	Rows int
	Cols int
}

// Coordinator queues scroll and resize requests so they apply at a safe
// point instead of mid-pass. Requests can be enqueued from any goroutine;
// the session drains them at the head of each render pass, before any
// buffer edits are computed. Each request is consumed exactly once. A new
// resize request replaces a pending one, since only the latest geometry
// matters.
type Coordinator struct {
	mu      sync.Mutex
	scrolls []ScrollRequest
	resize  *ResizeRequest
}

// NewCoordinator creates an empty request queue.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// RequestScroll queues a paging action.
func (c *Coordinator) RequestScroll(req ScrollRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrolls = append(c.scrolls, req)
}

// RequestResize queues a viewport size change, replacing any pending one.
func (c *Coordinator) RequestResize(rows, cols int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resize = &ResizeRequest{Rows: rows, Cols: cols}
}

// Pending returns true if any request is queued.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scrolls) > 0 || c.resize != nil
}

// Drain removes and returns all queued requests. The queue is empty
// afterward; a request returned here will never be returned again.
func (c *Coordinator) Drain() ([]ScrollRequest, *ResizeRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scrolls := c.scrolls
	resize := c.resize
	c.scrolls = nil
	c.resize = nil
	return scrolls, resize
}

// Apply drains the queue and applies each request to the screen: the
// resize first, then scrolls in arrival order.
func (c *Coordinator) Apply(s *Screen) {
	scrolls, resize := c.Drain()

	if resize != nil {
		s.Resize(resize.Rows, resize.Cols)
	}

	for _, req := range scrolls {
		switch {
		case req.Granularity == ScrollPage && req.Direction == ScrollUp:
			s.PrevPage()
		case req.Granularity == ScrollPage && req.Direction == ScrollDown:
			s.NextPage()
		case req.Direction == ScrollUp:
			s.PrevLine()
		default:
			s.NextLine()
		}
	}
}
