package service

import (
	"context"
	"errors"
	"fmt"

	"societyhub/internal/model"
	"societyhub/pkg/generic"

	"gorm.io/gorm"
)

// AgreementService creates rent agreements between owners and tenants
type AgreementService struct {
	db         *gorm.DB
	agreements *generic.ScopedRepository[model.Agreement, *model.Agreement]
	flats      *generic.ScopedRepository[model.Flat, *model.Flat]
	users      *generic.ScopedRepository[model.User, *model.User]
	auth       *AuthService
}

func NewAgreementService(db *gorm.DB, auth *AuthService) *AgreementService {
	return &AgreementService{
		db:         db,
		agreements: generic.NewScopedRepository[model.Agreement](db),
		flats:      generic.NewScopedRepository[model.Flat](db),
		users:      generic.NewScopedRepository[model.User](db),
		auth:       auth,
	}
}

func (s *AgreementService) List(ctx context.Context, sc generic.Scope) ([]model.Agreement, error) {
	return s.agreements.List(ctx, sc, generic.Preload("Flat"), generic.Preload("Tenant"))
}

func (s *AgreementService) Delete(ctx context.Context, sc generic.Scope, id uint) error {
	return s.agreements.Delete(ctx, sc, id)
}

// Create records an agreement for a flat the caller owns. The tenant must be
// a tenant or resident of the same society; they are moved into the flat in
// the same transaction.
func (s *AgreementService) Create(ctx context.Context, sc generic.Scope, req *model.AgreementRequest) (*model.Agreement, error) {
	flat, err := s.flats.Get(ctx, sc, req.FlatID)
	if err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return nil, fmt.Errorf("%w: flat %d is not yours", model.ErrInvalid, req.FlatID)
		}
		return nil, err
	}

	society := generic.Scope{Role: model.RoleAdmin, SocietyID: sc.SocietyID}
	tenant, err := s.users.Get(ctx, society, req.TenantID)
	if err != nil {
		if errors.Is(err, generic.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant %d not found in society", model.ErrInvalid, req.TenantID)
		}
		return nil, err
	}
	if tenant.Role != model.RoleTenant && tenant.Role != model.RoleResident {
		return nil, fmt.Errorf("%w: user %d is not a tenant", model.ErrInvalid, req.TenantID)
	}

	agreement := &model.Agreement{
		FlatID:        flat.ID,
		OwnerID:       sc.UserID,
		TenantID:      tenant.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		DocumentURL:   req.DocumentURL,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.agreements.WithTx(tx).Create(ctx, sc, agreement); err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", tenant.ID).UpdateColumn("flat_id", flat.ID).Error
	})
	if err != nil {
		return nil, err
	}
	s.auth.InvalidateUser(ctx, tenant.ID)
	return agreement, nil
}
