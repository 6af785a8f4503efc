package httpresp

import "github.com/gin-gonic/gin"

type PageResponse[T any] struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

// Page writes one page of a larger result set. A nil slice is sent as [].
func Page[T any](c *gin.Context, status int, data []T, page, limit int, total int64) {
	if data == nil {
		data = []T{}
	}
	c.JSON(status, PageResponse[T]{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  data,
	})
}
