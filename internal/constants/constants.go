package constants

const (
	AppName = "quickbite"

	CollectionUsers  = "quickbite-users"
	CollectionMenu   = "quickbite-menu"
	CollectionOffers = "quickbite-offers"
	CollectionOrders = "quickbite-orders"
)
