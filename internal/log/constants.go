package log

const (
	KeyAppName       = "app"
	KeyCacheKey      = "cacheKey"
	KeyConfig        = "config"
	KeyEmail         = "email"
	KeyMenuItems     = "menuItems"
	KeyOffers        = "offers"
	KeyOrderID       = "orderId"
	KeyOrders        = "orders"
	KeyProcess       = "process"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestID     = "requestId"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTag           = "tag"
	KeyUserID        = "userId"
)
