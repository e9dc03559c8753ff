package storefront

import "context"

// MarketService handles the peer-to-peer marketplace for reselling owned
// games and frames.
type MarketService struct {
	client *Client
	base   string
}

// Listings returns every active resale listing.
func (s *MarketService) Listings(ctx context.Context) ([]MarketItem, error) {
	var resp itemsResponse
	if err := s.client.get(ctx, s.base, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// SellRequest creates a resale listing for an owned item.
type SellRequest struct {
	SellerID int64    `json:"seller_id"`
	ItemType ItemType `json:"item_type"`
	ItemID   int64    `json:"item_id"`
	Price    float64  `json:"price"`
}

type sellActionRequest struct {
	Action string `json:"action"`
	SellRequest
}

// Sell lists an owned item for sale.
func (s *MarketService) Sell(ctx context.Context, req SellRequest) (*SellResult, error) {
	var resp SellResult
	if err := s.client.post(ctx, s.base, sellActionRequest{Action: "sell", SellRequest: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type buyItemRequest struct {
	Action  string `json:"action"`
	ItemID  int64  `json:"item_id"`
	BuyerID int64  `json:"buyer_id"`
}

// Buy purchases a listing. The server is the sole authority: it rejects
// with 404 when the listing is gone and 400 on insufficient funds, and
// settles the balance transfer and ownership grant itself.
func (s *MarketService) Buy(ctx context.Context, itemID, buyerID int64) (*BuyResult, error) {
	var resp BuyResult
	err := s.client.post(ctx, s.base, buyItemRequest{
		Action:  "buy",
		ItemID:  itemID,
		BuyerID: buyerID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

type cancelRequest struct {
	ItemID   int64 `json:"item_id"`
	SellerID int64 `json:"seller_id"`
}

// Cancel withdraws a listing. Canceling a listing that is already gone
// surfaces a business rejection.
func (s *MarketService) Cancel(ctx context.Context, itemID, sellerID int64) error {
	return s.client.delete(ctx, s.base, cancelRequest{ItemID: itemID, SellerID: sellerID}, nil)
}
