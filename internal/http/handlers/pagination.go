package handlers

import (
	"strconv"
	"strings"

	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/http/response"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query parameters. page_size accepts
// "all" or -1 to disable paging.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	raw := strings.TrimSpace(c.DefaultQuery("page_size", ""))
	if strings.EqualFold(raw, "all") {
		return page, constants.PageSizeAll
	}
	pageSize, err := strconv.Atoi(raw)
	if err != nil {
		return page, constants.DefaultPageSize
	}
	if pageSize == constants.PageSizeAll {
		return page, pageSize
	}
	if pageSize <= 0 {
		return page, constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}

// buildPagination assembles paging metadata. With paging disabled every
// match is one page.
func buildPagination(page, pageSize int, total int64) response.Pagination {
	if pageSize == constants.PageSizeAll {
		return response.Pagination{
			Page:      1,
			PageSize:  int(total),
			Total:     total,
			TotalPage: 1,
		}
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
