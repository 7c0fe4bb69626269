package i18n

import "github.com/handmade-next/internal/constants"

var catalog = map[string]map[string]string{
	constants.LocaleViVN: {
		"common.success":                 "Thành công",
		"error.bad_request":              "Yêu cầu không hợp lệ",
		"error.unauthorized":             "Chưa xác thực",
		"error.forbidden":                "Không có quyền thực hiện",
		"error.not_found":                "Không tìm thấy dữ liệu",
		"error.rate_limited":             "Bạn thao tác quá nhanh, vui lòng thử lại sau",
		"error.rate_limited_wait":        "Bạn thao tác quá nhanh, vui lòng thử lại sau %d giây",
		"error.internal_error":           "Lỗi hệ thống",
		"error.persistence_error":        "Không thể lưu dữ liệu",
		"error.invalid_reference":        "Tham chiếu không hợp lệ",
		"error.incomplete_combinations":  "Tổ hợp biến thể chưa đầy đủ",
		"error.duplicate_combination":    "Tổ hợp biến thể bị trùng lặp",
		"error.unexpected_combination":   "Tổ hợp biến thể không thuộc các biến thể đã chọn",
		"error.config_version_conflict":  "Cấu hình sản phẩm đã bị thay đổi, vui lòng tải lại",
		"error.variation_required":       "Cần ít nhất một biến thể",
		"error.axis_invalid":             "Biến thể không hợp lệ",
		"error.item_price_invalid":       "Giá bán không được âm",
		"error.item_stock_invalid":       "Tồn kho không hợp lệ",
		"error.too_many_combinations":    "Quá nhiều tổ hợp biến thể",
		"error.slug_exists":              "Slug đã tồn tại",
		"error.name_required":            "Tên là bắt buộc",
		"error.not_deleted":              "Bản ghi chưa bị xoá",
		"error.parent_deleted":           "Bản ghi cha đã bị xoá",
		"error.category_in_use":          "Danh mục đang được sử dụng",
		"error.category_not_found":       "Không tìm thấy danh mục",
		"error.variation_not_found":      "Không tìm thấy biến thể",
		"error.variation_name_exists":    "Tên biến thể đã tồn tại trong danh mục",
		"error.variation_option_exists":  "Tuỳ chọn đã tồn tại",
		"error.variation_in_use":         "Biến thể đang được sản phẩm sử dụng",
		"error.variation_option_in_use":  "Tuỳ chọn đang được sản phẩm sử dụng",
		"error.product_not_available":    "Sản phẩm không khả dụng",
		"error.product_item_not_found":   "Không tìm thấy phiên bản sản phẩm",
		"error.stock_insufficient":       "Không đủ tồn kho",
		"error.order_quantity_invalid":   "Số lượng không hợp lệ",
		"error.order_status_invalid":     "Trạng thái đơn hàng không hợp lệ",
		"error.order_transition_invalid": "Không thể chuyển trạng thái đơn hàng",
		"error.order_create_failed":      "Tạo đơn hàng thất bại",
		"error.queue_unavailable":        "Hàng đợi không khả dụng",
		"error.validation":               "Dữ liệu không hợp lệ: %s",
	},
	constants.LocaleEnUS: {
		"common.success":                 "Success",
		"error.bad_request":              "Bad request",
		"error.unauthorized":             "Unauthorized",
		"error.forbidden":                "Forbidden",
		"error.not_found":                "Not found",
		"error.rate_limited":             "Too many requests, please retry later",
		"error.rate_limited_wait":        "Too many requests, please retry in %d seconds",
		"error.internal_error":           "Internal server error",
		"error.persistence_error":        "Failed to persist data",
		"error.invalid_reference":        "Invalid reference",
		"error.incomplete_combinations":  "Variation combinations are incomplete",
		"error.duplicate_combination":    "Variation combination is duplicated",
		"error.unexpected_combination":   "Variation combination is outside the declared variations",
		"error.config_version_conflict":  "Product configuration changed, please reload",
		"error.variation_required":       "At least one variation is required",
		"error.axis_invalid":             "Variation selection is invalid",
		"error.item_price_invalid":       "Item price must not be negative",
		"error.item_stock_invalid":       "Item stock is invalid",
		"error.too_many_combinations":    "Too many variation combinations",
		"error.slug_exists":              "Slug already exists",
		"error.name_required":            "Name is required",
		"error.not_deleted":              "Record is not deleted",
		"error.parent_deleted":           "Parent record is deleted",
		"error.category_in_use":          "Category is in use",
		"error.category_not_found":       "Category not found",
		"error.variation_not_found":      "Variation not found",
		"error.variation_name_exists":    "Variation name already exists in category",
		"error.variation_option_exists":  "Variation option already exists",
		"error.variation_in_use":         "Variation is used by products",
		"error.variation_option_in_use":  "Variation option is used by products",
		"error.product_not_available":    "Product not available",
		"error.product_item_not_found":   "Product item not found",
		"error.stock_insufficient":       "Insufficient stock",
		"error.order_quantity_invalid":   "Order quantity is invalid",
		"error.order_status_invalid":     "Order status is invalid",
		"error.order_transition_invalid": "Order status transition is not allowed",
		"error.order_create_failed":      "Failed to create order",
		"error.queue_unavailable":        "Queue unavailable",
		"error.validation":               "Invalid input: %s",
	},
	constants.LocaleZhCN: {
		"common.success":                 "成功",
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录",
		"error.forbidden":                "无权限",
		"error.not_found":                "数据不存在",
		"error.rate_limited":             "操作过于频繁，请稍后再试",
		"error.rate_limited_wait":        "操作过于频繁，请 %d 秒后再试",
		"error.internal_error":           "系统错误",
		"error.persistence_error":        "数据保存失败",
		"error.invalid_reference":        "引用无效",
		"error.incomplete_combinations":  "规格组合不完整",
		"error.duplicate_combination":    "规格组合重复",
		"error.unexpected_combination":   "规格组合不在所选规格范围内",
		"error.config_version_conflict":  "商品配置已被修改，请刷新后重试",
		"error.variation_required":       "至少需要一个规格",
		"error.axis_invalid":             "规格选择无效",
		"error.item_price_invalid":       "售价不能为负数",
		"error.item_stock_invalid":       "库存无效",
		"error.too_many_combinations":    "规格组合过多",
		"error.slug_exists":              "Slug 已存在",
		"error.name_required":            "名称不能为空",
		"error.not_deleted":              "记录未被删除",
		"error.parent_deleted":           "上级记录已删除",
		"error.category_in_use":          "分类正在使用中",
		"error.category_not_found":       "分类不存在",
		"error.variation_not_found":      "规格不存在",
		"error.variation_name_exists":    "分类下规格名称已存在",
		"error.variation_option_exists":  "规格选项已存在",
		"error.variation_in_use":         "规格已被商品使用",
		"error.variation_option_in_use":  "规格选项已被商品使用",
		"error.product_not_available":    "商品不可购买",
		"error.product_item_not_found":   "商品规格不存在",
		"error.stock_insufficient":       "库存不足",
		"error.order_quantity_invalid":   "购买数量无效",
		"error.order_status_invalid":     "订单状态无效",
		"error.order_transition_invalid": "订单状态不允许变更",
		"error.order_create_failed":      "订单创建失败",
		"error.queue_unavailable":        "队列不可用",
		"error.validation":               "参数校验失败：%s",
	},
}
