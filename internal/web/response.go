package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the conventional success envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK answers 200 with data.
func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKMsg answers 200 with a message and optional data.
func OKMsg(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created answers 201 with a message and data.
func Created(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}
