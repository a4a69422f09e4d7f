package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// ============================================================================
// Request Errors (Category: 01)
// ============================================================================

var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Bad request",
		MessageZH: "请求错误",
	})

	// ErrInvalidParam indicates an invalid parameter.
	ErrInvalidParam = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 1),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Invalid parameter",
		MessageZH: "参数无效",
	})

	// ErrMissingParam indicates a missing required parameter.
	ErrMissingParam = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 2),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Missing required parameter",
		MessageZH: "缺少必需参数",
	})

	// ErrRequestTooLarge indicates the request body exceeds the limit.
	ErrRequestTooLarge = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 3),
		HTTP:      http.StatusRequestEntityTooLarge,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Request entity too large",
		MessageZH: "请求体过大",
	})

	// ErrUnsupportedMediaType indicates an unsupported content type.
	ErrUnsupportedMediaType = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 4),
		HTTP:      http.StatusUnsupportedMediaType,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Unsupported media type",
		MessageZH: "不支持的媒体类型",
	})
)

// ============================================================================
// Resource Errors (Category: 04)
// ============================================================================

// ErrRouteNotFound indicates the route is not found.
var ErrRouteNotFound = Register(&Errno{
	Code:      MakeCode(ServiceCommon, CategoryResource, 0),
	HTTP:      http.StatusNotFound,
	GRPCCode:  codes.NotFound,
	MessageEN: "Not Found",
	MessageZH: "路由不存在",
})

// ============================================================================
// Internal Errors (Category: 07)
// ============================================================================

var (
	// ErrInternal indicates an internal server error.
	ErrInternal = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Internal server error",
		MessageZH: "服务器内部错误",
	})

	// ErrPanic indicates a recovered panic.
	ErrPanic = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryInternal, 1),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Service panic",
		MessageZH: "服务崩溃",
	})

	// ErrServiceBusy indicates the inference worker pool is saturated.
	ErrServiceBusy = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryInternal, 2),
		HTTP:      http.StatusServiceUnavailable,
		GRPCCode:  codes.ResourceExhausted,
		MessageEN: "Service busy, try again later",
		MessageZH: "服务繁忙，请稍后重试",
	})
)

// ============================================================================
// Upstream Errors (Category: 10 Network, 11 Timeout)
// ============================================================================

var (
	// ErrUpstream indicates a dependency returned an error.
	ErrUpstream = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryNetwork, 0),
		HTTP:      http.StatusBadGateway,
		GRPCCode:  codes.Unavailable,
		MessageEN: "Upstream service error",
		MessageZH: "上游服务错误",
	})

	// ErrUpstreamUnavailable indicates the circuit breaker for a dependency is open.
	ErrUpstreamUnavailable = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryNetwork, 1),
		HTTP:      http.StatusServiceUnavailable,
		GRPCCode:  codes.Unavailable,
		MessageEN: "Upstream service unavailable",
		MessageZH: "上游服务不可用",
	})

	// ErrTimeout indicates an operation exceeded its deadline.
	ErrTimeout = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryTimeout, 0),
		HTTP:      http.StatusGatewayTimeout,
		GRPCCode:  codes.DeadlineExceeded,
		MessageEN: "Operation timed out",
		MessageZH: "操作超时",
	})
)
