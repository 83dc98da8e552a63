package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/homecook/internal/repository"
)

var (
	ErrAlreadyWishlisted = errors.New("dish already in wishlist")
	ErrNotInWishlist     = errors.New("dish not found in wishlist")
)

// WishlistService 心愿单
type WishlistService interface {
	Add(ctx context.Context, customerID, dishID int64) error
	Remove(ctx context.Context, customerID, dishID int64) error
	List(ctx context.Context, customerID int64) ([]repository.WishlistRow, error)
}

type wishlistService struct {
	wishlist repository.WishlistRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlist repository.WishlistRepository) WishlistService {
	return &wishlistService{wishlist: wishlist}
}

func (s *wishlistService) Add(ctx context.Context, customerID, dishID int64) error {
	added, err := s.wishlist.Add(ctx, customerID, dishID)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyWishlisted
	}
	return nil
}

func (s *wishlistService) Remove(ctx context.Context, customerID, dishID int64) error {
	removed, err := s.wishlist.Remove(ctx, customerID, dishID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInWishlist
	}
	return nil
}

func (s *wishlistService) List(ctx context.Context, customerID int64) ([]repository.WishlistRow, error) {
	return s.wishlist.ListByCustomer(ctx, customerID)
}
