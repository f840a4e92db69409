package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParam extracts the 1-indexed page number from the query string.
// Malformed or sub-1 values are normalized to 1, never rejected.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
