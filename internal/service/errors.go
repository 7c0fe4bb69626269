package service

import "errors"

// 通用错误
var (
	ErrNotFound          = errors.New("not found")
	ErrSlugExists        = errors.New("slug already exists")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrPersistence       = errors.New("persistence failure")
	ErrQueueUnavailable  = errors.New("queue unavailable")
	ErrNotDeleted        = errors.New("record is not deleted")
	ErrNameRequired      = errors.New("name is required")
	ErrCategoryInUse     = errors.New("category is in use")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrVariationNotFound = errors.New("variation not found")
)

// 规格相关错误
var (
	ErrVariationNameExists   = errors.New("variation name already exists in category")
	ErrVariationOptionExists = errors.New("variation option already exists")
	ErrVariationInUse        = errors.New("variation is referenced by products")
	ErrVariationOptionInUse  = errors.New("variation option is referenced by products")
	ErrParentDeleted         = errors.New("parent record is deleted")
)

// 规格组合相关错误
var (
	ErrVariationRequired     = errors.New("at least one variation is required")
	ErrAxisInvalid           = errors.New("variation axis is invalid")
	ErrCombinationIncomplete = errors.New("combinations do not cover every option tuple")
	ErrCombinationDuplicate  = errors.New("combination is provided more than once")
	ErrCombinationUnexpected = errors.New("combination is outside the declared variations")
	ErrItemPriceInvalid      = errors.New("item price is invalid")
	ErrItemStockInvalid      = errors.New("item stock is invalid")
	ErrConfigVersionConflict = errors.New("product configuration was modified concurrently")
	ErrTooManyCombinations   = errors.New("too many combinations")
	ErrProductNotAvailable   = errors.New("product not available")
	ErrProductItemNotFound   = errors.New("product item not found")
)

// 订单相关错误
var (
	ErrStockInsufficient      = errors.New("stock insufficient")
	ErrOrderQuantityInvalid   = errors.New("order quantity is invalid")
	ErrOrderStatusInvalid     = errors.New("order status is invalid")
	ErrOrderTransitionInvalid = errors.New("order status transition is not allowed")
	ErrOrderCreateFailed      = errors.New("order create failed")
)

var domainErrors = []error{
	ErrNotFound, ErrSlugExists, ErrForbidden, ErrInvalidReference, ErrPersistence,
	ErrQueueUnavailable, ErrNotDeleted, ErrNameRequired, ErrCategoryInUse,
	ErrCategoryNotFound, ErrVariationNotFound, ErrVariationNameExists,
	ErrVariationOptionExists, ErrVariationInUse, ErrVariationOptionInUse,
	ErrParentDeleted, ErrVariationRequired, ErrAxisInvalid, ErrCombinationIncomplete,
	ErrCombinationDuplicate, ErrCombinationUnexpected, ErrItemPriceInvalid,
	ErrItemStockInvalid, ErrConfigVersionConflict, ErrTooManyCombinations,
	ErrProductNotAvailable, ErrProductItemNotFound, ErrStockInsufficient,
	ErrOrderQuantityInvalid, ErrOrderStatusInvalid, ErrOrderTransitionInvalid,
	ErrOrderCreateFailed,
}

// isDomainError 是否为业务层已定义的错误
func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
