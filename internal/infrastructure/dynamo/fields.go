package dynamo

// DynamoDB attribute and index names shared by the repos and Bootstrap.
const (
	fieldBuyerID   = "buyer_id"
	fieldSellerID  = "seller_id"
	fieldShopID    = "shop_id"
	fieldEmail     = "email"
	fieldUpdatedAt = "updated_at"

	fieldStateKey  = "state_key"
	fieldValue     = "value"
	fieldExpiresAt = "expires_at"

	emailIndex    = "email-index"
	sellerIDIndex = "seller_id-index"
)
