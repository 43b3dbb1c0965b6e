package service

const (
	defaultPageSize = 15
	maxPageSize     = 100
)

// normalizePage clamps page and pageSize and returns the row offset
func normalizePage(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}
