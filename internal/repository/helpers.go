package repository

import (
	"database/sql"
	"fmt"
)

const maxPageSize = 100

// expectAffected converts a zero-row write into sql.ErrNoRows so services can map it to NOT_FOUND.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func pageBounds(page, size int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = 20
	}
	return size, (page - 1) * size
}
