package shared

import (
	"errors"
	"net/http"

	"github.com/handmade-next/internal/service"
)

// ErrorMapping service 错误到 HTTP 响应的映射
type ErrorMapping struct {
	Sentinel error
	Status   int
	Key      string
}

var serviceErrorMappings = []ErrorMapping{
	{service.ErrInvalidReference, http.StatusBadRequest, "error.invalid_reference"},
	{service.ErrCombinationIncomplete, http.StatusBadRequest, "error.incomplete_combinations"},
	{service.ErrCombinationDuplicate, http.StatusBadRequest, "error.duplicate_combination"},
	{service.ErrCombinationUnexpected, http.StatusBadRequest, "error.unexpected_combination"},
	{service.ErrVariationRequired, http.StatusBadRequest, "error.variation_required"},
	{service.ErrAxisInvalid, http.StatusBadRequest, "error.axis_invalid"},
	{service.ErrItemPriceInvalid, http.StatusBadRequest, "error.item_price_invalid"},
	{service.ErrItemStockInvalid, http.StatusBadRequest, "error.item_stock_invalid"},
	{service.ErrTooManyCombinations, http.StatusBadRequest, "error.too_many_combinations"},
	{service.ErrNameRequired, http.StatusBadRequest, "error.name_required"},
	{service.ErrOrderQuantityInvalid, http.StatusBadRequest, "error.order_quantity_invalid"},
	{service.ErrOrderStatusInvalid, http.StatusBadRequest, "error.order_status_invalid"},
	{service.ErrProductNotAvailable, http.StatusBadRequest, "error.product_not_available"},
	{service.ErrConfigVersionConflict, http.StatusConflict, "error.config_version_conflict"},
	{service.ErrSlugExists, http.StatusConflict, "error.slug_exists"},
	{service.ErrVariationNameExists, http.StatusConflict, "error.variation_name_exists"},
	{service.ErrVariationOptionExists, http.StatusConflict, "error.variation_option_exists"},
	{service.ErrCategoryInUse, http.StatusConflict, "error.category_in_use"},
	{service.ErrVariationInUse, http.StatusConflict, "error.variation_in_use"},
	{service.ErrVariationOptionInUse, http.StatusConflict, "error.variation_option_in_use"},
	{service.ErrNotDeleted, http.StatusConflict, "error.not_deleted"},
	{service.ErrParentDeleted, http.StatusConflict, "error.parent_deleted"},
	{service.ErrStockInsufficient, http.StatusConflict, "error.stock_insufficient"},
	{service.ErrOrderTransitionInvalid, http.StatusConflict, "error.order_transition_invalid"},
	{service.ErrForbidden, http.StatusForbidden, "error.forbidden"},
	{service.ErrTokenInvalid, http.StatusUnauthorized, "error.unauthorized"},
	{service.ErrCategoryNotFound, http.StatusNotFound, "error.category_not_found"},
	{service.ErrVariationNotFound, http.StatusNotFound, "error.variation_not_found"},
	{service.ErrProductItemNotFound, http.StatusNotFound, "error.product_item_not_found"},
	{service.ErrNotFound, http.StatusNotFound, "error.not_found"},
	{service.ErrQueueUnavailable, http.StatusServiceUnavailable, "error.queue_unavailable"},
	{service.ErrOrderCreateFailed, http.StatusInternalServerError, "error.order_create_failed"},
	{service.ErrPersistence, http.StatusInternalServerError, "error.persistence_error"},
}

// MapServiceError 查找错误映射，未识别的错误按持久化失败处理
func MapServiceError(err error) ErrorMapping {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.Sentinel) {
			return mapping
		}
	}
	return ErrorMapping{Status: http.StatusInternalServerError, Key: "error.persistence_error"}
}
