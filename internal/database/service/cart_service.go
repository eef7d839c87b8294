package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
)

// CartView is the caller's cart with current prices.
type CartView struct {
	CartID     uint                  `json:"cart_id"`
	Items      []repository.CartLine `json:"items"`
	TotalPrice int64                 `json:"total_price"`
}

// CartService defines the interface for shopping cart business logic
type CartService interface {
	AddItem(ctx context.Context, userID, bookID uint, quantity int) (*models.CartItem, error)
	View(ctx context.Context, userID uint) (*CartView, error)
	// UpdateItem sets the line quantity; zero or less removes the line and
	// reports removed=true.
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (removed bool, err error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
}

type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// NewCartService creates a new cart service instance
func NewCartService(txManager repository.TransactionManager, cartRepo repository.CartRepository, logger *slog.Logger) CartService {
	return &cartService{
		txManager: txManager,
		cartRepo:  cartRepo,
		logger:    logger,
	}
}

func (s *cartService) AddItem(ctx context.Context, userID, bookID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperror.ErrInvalidInput.WithDetails(map[string]string{"quantity": "must be at least 1"})
	}

	var item *models.CartItem
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if _, err := repos.NewBookRepository().FindByID(ctx, bookID); err != nil {
			if errors.Is(err, repository.ErrBookNotFound) {
				return apperror.ErrBookNotFound
			}
			return apperror.Wrap(err, "load book")
		}

		carts := repos.NewCartRepository()
		cart, err := carts.GetOrCreate(ctx, userID)
		if err != nil {
			return apperror.Wrap(err, "load cart")
		}

		item, err = carts.AddItem(ctx, cart.ID, bookID, quantity)
		if err != nil {
			return apperror.Wrap(err, "add cart item")
		}
		return nil
	})
	if err != nil {
		if _, ok := apperror.As(err); !ok {
			s.logger.Error("❌ [CartService] Failed to add item", "user_id", userID, "book_id", bookID, "error", err)
		}
		return nil, err
	}

	s.logger.Debug("🛒 [CartService] Item added", "user_id", userID, "book_id", bookID, "quantity", item.Quantity)
	return item, nil
}

func (s *cartService) View(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &CartView{Items: []repository.CartLine{}}, nil
		}
		return nil, apperror.Wrap(err, "load cart")
	}

	lines, err := s.cartRepo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, apperror.Wrap(err, "list cart lines")
	}

	view := &CartView{CartID: cart.ID, Items: lines}
	for _, line := range lines {
		view.TotalPrice += line.Price * int64(line.Quantity)
	}
	return view, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (bool, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return false, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return false, s.itemError(err, "delete cart item")
		}
		return true, nil
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return false, s.itemError(err, "update cart item")
	}
	return false, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return s.itemError(err, "delete cart item")
	}
	return nil
}

// ownedItem hides other users' lines behind RESOURCE_NOT_FOUND.
func (s *cartService) ownedItem(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, apperror.ErrResourceNotFound.WithMessage("Cart item not found.")
		}
		return nil, apperror.Wrap(err, "load cart")
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, s.itemError(err, "load cart item")
	}
	return item, nil
}

func (s *cartService) itemError(err error, action string) error {
	if errors.Is(err, repository.ErrCartItemNotFound) {
		return apperror.ErrResourceNotFound.WithMessage("Cart item not found.")
	}
	s.logger.Error("❌ [CartService] Cart operation failed", "action", action, "error", err)
	return apperror.Wrap(err, action)
}
