package panel

import "go-order-panel/models"

// PageSize is the number of completed orders per page.
const PageSize = 5

func totalPages(count int) int {
	return (count + PageSize - 1) / PageSize
}

func clampPage(n, pages int) int {
	if pages < 1 {
		pages = 1
	}
	if n < 1 {
		return 1
	}
	if n > pages {
		return pages
	}
	return n
}

func (s *Session) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPages(len(s.completed))
}

// Page returns the completed orders on page n, after clamping n into range.
func (s *Session) Page(n int) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked(n)
}

func (s *Session) pageLocked(n int) []models.Order {
	n = clampPage(n, totalPages(len(s.completed)))
	start := (n - 1) * PageSize
	if start >= len(s.completed) {
		return []models.Order{}
	}
	end := start + PageSize
	if end > len(s.completed) {
		end = len(s.completed)
	}
	return models.CloneOrders(s.completed[start:end])
}

// CurrentPage is the stored page clamped against the current collection size.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clampPage(s.page, totalPages(len(s.completed)))
}

func (s *Session) CurrentPageOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked(s.page)
}

func (s *Session) NextPage() int {
	return s.movePage(func(cur int) int { return cur + 1 })
}

func (s *Session) PrevPage() int {
	return s.movePage(func(cur int) int { return cur - 1 })
}

func (s *Session) GoToPage(n int) int {
	return s.movePage(func(int) int { return n })
}

func (s *Session) movePage(step func(cur int) int) int {
	s.mu.Lock()
	pages := totalPages(len(s.completed))
	cur := clampPage(s.page, pages)
	next := clampPage(step(cur), pages)
	changed := next != s.page
	s.page = next
	s.mu.Unlock()

	if changed {
		s.emit(ChangeOrders)
	}
	return next
}
