package constants

// 角色常量
const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

// 规格组合上限
const (
	MaxProductCombinations  = 500
	MaxVariationsPerProduct = 5
)

// 订单默认配置常量
const (
	OrderPaymentExpireMinutesDefault = 30
	OrderExpiredScanBatchSize        = 100
	OrderMaxQuantity                 = 99
)

// 队列常量
const (
	QueueDefault              = "default"
	QueueCritical             = "critical"
	TaskOrderTimeoutCancel    = "order:timeout_cancel"
	TaskProductSummaryRefresh = "product:summary_refresh"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "hm"
)

// 站点语言常量
const (
	LocaleViVN = "vi-VN"
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleViVN, LocaleEnUS, LocaleZhCN}
