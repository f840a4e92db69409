package pagination

// Page is one fixed-size slice of an ordered result set.
// Number is 1-indexed.
type Page[T any] struct {
	Items       []T
	Number      int
	PerPage     int
	TotalCount  int
	PageCount   int
	HasNext     bool
	HasPrevious bool
}

func (p Page[T]) NextNumber() int {
	return p.Number + 1
}

func (p Page[T]) PreviousNumber() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// Paginate slices items into the requested page. Page numbers below 1
// are treated as 1; numbers past the last page saturate to an empty
// page rather than failing, so arbitrary client-supplied numbers are
// always safe.
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	total := len(items)
	pageCount := (total + perPage - 1) / perPage

	start := (number - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      number,
		PerPage:     perPage,
		TotalCount:  total,
		PageCount:   pageCount,
		HasNext:     number < pageCount,
		HasPrevious: number > 1 && total > 0,
	}
}
