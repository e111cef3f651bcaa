// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/visitorstats/internal/app/system/network"
	"github.com/dalemusser/visitorstats/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg, requestFields(r, err)...)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	e.logger.Error(msg, append(requestFields(r, err), fields...)...)
}

func requestFields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", network.ClientIP(r)),
	}
}

// UnavailableVM is the view model for the statistics-unavailable page.
type UnavailableVM struct {
	viewdata.BaseVM
	Detail string
}

// Handler provides error page handlers.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the 404 not found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.New(r)
	vm.Title = "页面不存在"

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, notFoundPage, vm)
}

// InternalError renders the 500 internal server error page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.New(r)
	vm.Title = "服务器错误"

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, internalPage, vm)
}

// Unavailable renders the 502 page shown when the statistics service
// cannot be reached. detail is shown verbatim (escaped) below the heading.
func (h *Handler) Unavailable(w http.ResponseWriter, r *http.Request, detail string) {
	vm := UnavailableVM{
		BaseVM: viewdata.New(r),
		Detail: detail,
	}
	vm.Title = "统计数据暂不可用"

	w.WriteHeader(http.StatusBadGateway)
	templates.Render(w, r, unavailablePage, vm)
}
