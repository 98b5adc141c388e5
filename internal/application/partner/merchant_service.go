package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saturday/backend/internal/domain/partner"
	"github.com/saturday/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MerchantService handles merchant-related business operations
type MerchantService struct {
	merchantRepo partner.MerchantRepository
	logger       *zap.Logger
}

// NewMerchantService creates a new MerchantService
func NewMerchantService(merchantRepo partner.MerchantRepository, logger *zap.Logger) *MerchantService {
	return &MerchantService{
		merchantRepo: merchantRepo,
		logger:       logger,
	}
}

// Create creates a new merchant run by req.KeeperID
func (s *MerchantService) Create(ctx context.Context, req CreateMerchantRequest) (*MerchantResponse, error) {
	merchant, err := partner.NewMerchant(req.Name, req.Address, req.Phone, req.KeeperID)
	if err != nil {
		return nil, err
	}
	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		return nil, err
	}

	s.logger.Info("Merchant created",
		zap.String("merchant_id", merchant.ID.String()),
		zap.String("keeper_id", merchant.KeeperID.String()),
	)

	response := ToMerchantResponse(merchant)
	return &response, nil
}

// GetByID retrieves a merchant by ID
func (s *MerchantService) GetByID(ctx context.Context, id uuid.UUID) (*MerchantResponse, error) {
	merchant, err := s.merchantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMerchantResponse(merchant)
	return &response, nil
}

// GetMyMerchant retrieves the merchant run by the given keeper.
// The keeper identity comes from the authenticated caller, never from input.
func (s *MerchantService) GetMyMerchant(ctx context.Context, keeperID uuid.UUID) (*MerchantResponse, error) {
	merchant, err := s.merchantRepo.FindByKeeper(ctx, keeperID)
	if err != nil {
		return nil, err
	}
	response := ToMerchantResponse(merchant)
	return &response, nil
}

// List lists merchants with pagination
func (s *MerchantService) List(ctx context.Context, filter ListFilter) ([]MerchantResponse, int64, error) {
	merchants, err := s.merchantRepo.FindAll(ctx, toFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	total, err := s.merchantRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MerchantResponse, len(merchants))
	for i := range merchants {
		responses[i] = ToMerchantResponse(&merchants[i])
	}
	return responses, total, nil
}

// Update replaces a merchant's contact information and optionally hands
// it to another keeper
func (s *MerchantService) Update(ctx context.Context, id uuid.UUID, req UpdateMerchantRequest) (*MerchantResponse, error) {
	merchant, err := s.merchantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := merchant.Update(req.Name, req.Address, req.Phone); err != nil {
		return nil, err
	}
	if req.KeeperID != nil {
		if err := merchant.AssignKeeper(*req.KeeperID); err != nil {
			return nil, err
		}
	}
	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		return nil, err
	}

	s.logger.Info("Merchant updated",
		zap.String("merchant_id", id.String()),
		zap.String("keeper_id", merchant.KeeperID.String()),
	)

	response := ToMerchantResponse(merchant)
	return &response, nil
}

// Delete deletes a merchant that holds no stock and has no sales history
func (s *MerchantService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.merchantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInUse) {
			return partner.ErrMerchantInUse
		}
		return err
	}

	s.logger.Info("Merchant deleted", zap.String("merchant_id", id.String()))
	return nil
}
