package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/internal/repository"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

// AddressService implements the address book business logic.
type AddressService struct {
	repo   repository.AddressRepository
	logger *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(repo repository.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		logger: logger,
	}
}

// ListAddresses returns the user's live addresses, default first.
func (s *AddressService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	addresses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// AddAddress creates a new address for the user and returns it.
func (s *AddressService) AddAddress(ctx context.Context, userID string, in domain.AddressInput) (*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !in.HasRequiredFields() {
		return nil, apperrors.InvalidInput("full_name, address_line1, city and postal_code are required")
	}

	in.ID = "" // adding always inserts, existing ids are not references here
	id, err := s.repo.ResolveOrCreate(ctx, userID, in)
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}

	address, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("load created address: %w", err)
	}

	s.logger.InfoContext(ctx, "address added",
		slog.String("address_id", id),
		slog.String("user_id", userID),
	)

	return address, nil
}

// UpdateAddress applies the submitted fields to one of the user's addresses.
// A request carrying is_default=true promotes the address to default first,
// so the single-default invariant holds throughout.
func (s *AddressService) UpdateAddress(ctx context.Context, userID, addressID string, in domain.AddressInput) (*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if addressID == "" {
		return nil, apperrors.InvalidInput("address id is required")
	}

	if in.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, addressID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
	}

	address, err := s.repo.Update(ctx, userID, addressID, in)
	if err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	s.logger.InfoContext(ctx, "address updated",
		slog.String("address_id", addressID),
		slog.String("user_id", userID),
	)

	return address, nil
}

// DeleteAddress soft-deletes one of the user's addresses. The row survives
// for order history but disappears from listings and future checkouts.
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if addressID == "" {
		return nil, apperrors.InvalidInput("address id is required")
	}

	address, err := s.repo.SoftDelete(ctx, userID, addressID)
	if err != nil {
		return nil, fmt.Errorf("delete address: %w", err)
	}

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("address_id", addressID),
		slog.String("user_id", userID),
	)

	return address, nil
}
