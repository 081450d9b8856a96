package response

import (
	"errors"
	"net/http"

	"go-gin-gorm-blog/internal/domain"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	return ErrorWithData(code, customMsg, nil)
}

func ErrorWithData(code int, customMsg string, data interface{}) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, msg, data)
}

// StatusOf 业务错误类型 → HTTP 状态码；Conflict 按 400 返回
func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindConflict:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// FromError 内部错误只给通用文案，原因留给日志
func FromError(err error) (int, Resp) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, Error(CodeServerError, "")
	}
	status := StatusOf(de.Kind)
	if de.Kind == domain.KindInternal {
		return status, Error(status, de.Msg)
	}
	if len(de.Fields) > 0 {
		return status, ErrorWithData(status, de.Msg, map[string]any{"errors": de.Fields})
	}
	return status, Error(status, de.Msg)
}
