package server

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errTooManyRequests = errors.New("too many generation requests, try again shortly")

type apiError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

func respondFields(c *gin.Context, status int, code string, err error, fields map[string]string) {
	c.JSON(status, errorEnvelope{Error: apiError{Message: err.Error(), Code: code, Fields: fields}})
}
