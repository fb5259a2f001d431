package repository

import (
	"context"
	"marketplace-settlement/internal/model"

	"gorm.io/gorm"
)

type CommissionRuleRepository interface {
	ListActive(ctx context.Context) ([]*model.CommissionRule, error)
	List(ctx context.Context) ([]*model.CommissionRule, error)
	FindByID(ctx context.Context, id string) (*model.CommissionRule, error)
	Create(ctx context.Context, rule *model.CommissionRule) error
	Update(ctx context.Context, rule *model.CommissionRule) error
}

type commissionRuleRepoImpl struct {
	db *gorm.DB
}

func NewCommissionRuleRepository(db *gorm.DB) CommissionRuleRepository {
	return &commissionRuleRepoImpl{db: db}
}

func (r *commissionRuleRepoImpl) ListActive(ctx context.Context) ([]*model.CommissionRule, error) {
	var rules []*model.CommissionRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rules).Error

	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *commissionRuleRepoImpl) List(ctx context.Context) ([]*model.CommissionRule, error) {
	var rules []*model.CommissionRule
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&rules).Error

	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *commissionRuleRepoImpl) FindByID(ctx context.Context, id string) (*model.CommissionRule, error) {
	var rule model.CommissionRule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rule).Error

	if err != nil {
		return nil, err
	}

	return &rule, nil
}

func (r *commissionRuleRepoImpl) Create(ctx context.Context, rule *model.CommissionRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *commissionRuleRepoImpl) Update(ctx context.Context, rule *model.CommissionRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}
