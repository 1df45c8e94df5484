package shopping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// DefaultMergeGuardTTL is how long a processed login event id is remembered
const DefaultMergeGuardTTL = 24 * time.Hour

// MergeService folds a browser's anonymous cart and wishlist into the
// account stores at login. The fold runs exactly once per login event
// (guarded by an idempotency store) and is applied per item, best effort:
// one bad item is reported without rolling back its siblings.
type MergeService struct {
	carts     shopping.CartRepository
	wishlists shopping.WishlistRepository
	guard     shared.IdempotencyStore
	logger    *zap.Logger
	guardTTL  time.Duration
}

// NewMergeService creates a new MergeService
func NewMergeService(carts shopping.CartRepository, wishlists shopping.WishlistRepository, guard shared.IdempotencyStore, logger *zap.Logger) *MergeService {
	return &MergeService{
		carts:     carts,
		wishlists: wishlists,
		guard:     guard,
		logger:    logger,
		guardTTL:  DefaultMergeGuardTTL,
	}
}

// WithGuardTTL overrides how long processed login event ids are remembered
func (s *MergeService) WithGuardTTL(ttl time.Duration) *MergeService {
	if ttl > 0 {
		s.guardTTL = ttl
	}
	return s
}

// MergeOnLogin reconciles the anonymous snapshots into the account stores.
// loginEventID identifies the login event; replaying the same event id
// returns the current account stores without folding again. A re-captured
// snapshot under a fresh login event folds again - that is documented
// behavior, not dedup.
func (s *MergeService) MergeOnLogin(ctx context.Context, accountID uuid.UUID, loginEventID string, anonCart shopping.SessionCart, anonWishlist shopping.SessionWishlist) (*MergeResult, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if loginEventID == "" {
		return nil, shared.NewDomainError("INVALID_LOGIN_EVENT", "Login event ID cannot be empty")
	}

	fresh, err := s.guard.MarkProcessed(ctx, "login-merge:"+loginEventID, s.guardTTL)
	if err != nil {
		// The guard being down must not block login. A duplicate fold is
		// user-visible but recoverable; a refused login is not.
		s.logger.Warn("merge idempotency guard unavailable, proceeding unguarded",
			zap.String("login_event_id", loginEventID),
			zap.Error(err),
		)
		fresh = true
	}

	if !fresh {
		result, err := s.currentStores(ctx, accountID)
		if err != nil {
			return nil, err
		}
		result.AlreadyMerged = true
		return result, nil
	}

	result := &MergeResult{ClearAnonymous: true}

	cart, err := s.carts.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, line := range anonCart.Lines {
		if err := cart.MergeLine(line); err != nil {
			s.logger.Warn("cart line skipped during login merge",
				zap.String("account_id", accountID.String()),
				zap.String("product_id", line.ProductID.String()),
				zap.Error(err),
			)
			result.Failures = append(result.Failures, MergeFailure{
				ProductID: line.ProductID,
				Reason:    err.Error(),
			})
			continue
		}
		result.MergedLines++
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	// Re-read the account wishlist inside this call so the set difference is
	// computed against the latest server-confirmed state, not a stale client
	// copy.
	wishlist, err := s.wishlists.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, productID := range anonWishlist.ProductIDs {
		added, err := wishlist.Add(productID)
		if err != nil {
			s.logger.Warn("wishlist item skipped during login merge",
				zap.String("account_id", accountID.String()),
				zap.String("product_id", productID.String()),
				zap.Error(err),
			)
			result.Failures = append(result.Failures, MergeFailure{
				ProductID: productID,
				Reason:    err.Error(),
			})
			continue
		}
		if added {
			result.AddedWishlistItems++
		}
	}
	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	result.Cart = ToCartResponse(cart)
	result.Wishlist = ToWishlistResponse(wishlist)
	return result, nil
}

// currentStores loads both account stores for display without mutating them
func (s *MergeService) currentStores(ctx context.Context, accountID uuid.UUID) (*MergeResult, error) {
	cart, err := s.carts.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	wishlist, err := s.wishlists.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &MergeResult{
		Cart:           ToCartResponse(cart),
		Wishlist:       ToWishlistResponse(wishlist),
		ClearAnonymous: true,
	}, nil
}
