package billing

import "context"

// Entitlements are the domain effects a settled payment may apply. Every
// method sets a boolean flag, so applying one twice is harmless.
type Entitlements interface {
	GrantMembership(ctx context.Context, userID string) error
	GrantArtistAnnual(ctx context.Context, userID string) error
	MarkExhibitionPaid(ctx context.Context, exhibitionID string) error
	MarkArtworkSold(ctx context.Context, artworkID string) error
	MarkOrderPaid(ctx context.Context, orderID string) error
}
