package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oltcmd/oltcmd/internal/catalog"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Code: "SUCCESS", Message: "ok", Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Code: code, Message: message})
}

// catalogError 目录查找错误映射为 HTTP 状态
func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrVendorNotFound):
		fail(c, http.StatusNotFound, "VENDOR_NOT_FOUND", err.Error())
	case errors.Is(err, catalog.ErrPathNotFound):
		fail(c, http.StatusNotFound, "PATH_NOT_FOUND", err.Error())
	case errors.Is(err, catalog.ErrNotLeaf):
		fail(c, http.StatusBadRequest, "NOT_A_COMMAND", err.Error())
	case catalog.IsParseError(err):
		fail(c, http.StatusBadRequest, "INVALID_CATALOG", err.Error())
	default:
		fail(c, http.StatusInternalServerError, "ERROR", err.Error())
	}
}
