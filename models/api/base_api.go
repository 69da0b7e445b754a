package apimodels

import (
	"hiring-platform-backend/lib/apperror"
)

type Response struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
	Meta    *Meta          `json:"meta,omitempty"`
}

type ResponseError struct {
	Message string                `json:"message"`
	Code    apperror.Code         `json:"code"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

func NewResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func NewError(appErr *apperror.Error) Response {
	return Response{
		Success: false,
		Error: &ResponseError{
			Message: appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		},
	}
}

func NewListResponse(data interface{}, page, limit int, total int64) Response {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

type Pagination struct {
	Limit int `json:"limit" query:"limit"` // page size
	Page  int `json:"page" query:"page"`   // 1-indexed page number
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
