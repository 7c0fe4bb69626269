package response

// 业务错误码，与 HTTP 状态码一并返回
const (
	CodeOK                     = "ok"
	CodeBadRequest             = "bad_request"
	CodeUnauthorized           = "unauthorized"
	CodeForbidden              = "forbidden"
	CodeNotFound               = "not_found"
	CodeConflict               = "conflict"
	CodeTooManyRequests        = "rate_limited"
	CodeInternal               = "internal_error"
	CodePersistence            = "persistence_error"
	CodeInvalidReference       = "invalid_reference"
	CodeIncompleteCombinations = "incomplete_combinations"
	CodeDuplicateCombination   = "duplicate_combination"
	CodeUnexpectedCombination  = "unexpected_combination"
	CodeConfigVersionConflict  = "config_version_conflict"
)
