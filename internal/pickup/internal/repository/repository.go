// Copyright 2024 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/estore/internal/pickup/internal/domain"
	"github.com/ecodeclub/estore/internal/pickup/internal/repository/dao"
)

type PickupCodeRepository interface {
	Create(ctx context.Context, c domain.Code) (domain.Code, error)
	FindByCode(ctx context.Context, code string) (domain.Code, error)
	FindByOrderID(ctx context.Context, orderID int64) (domain.Code, error)
	Redeem(ctx context.Context, code string, redeemerID int64) (domain.Code, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	HasRedeemLog(ctx context.Context, code string) (bool, error)
}

func NewRepository(d dao.PickupCodeDAO) PickupCodeRepository {
	return &pickupCodeRepository{d: d}
}

type pickupCodeRepository struct {
	d dao.PickupCodeDAO
}

func (p *pickupCodeRepository) Create(ctx context.Context, c domain.Code) (domain.Code, error) {
	entity, err := p.d.Insert(ctx, p.toEntity(c))
	if err != nil {
		return domain.Code{}, err
	}
	return p.toDomain(entity), nil
}

func (p *pickupCodeRepository) FindByCode(ctx context.Context, code string) (domain.Code, error) {
	c, err := p.d.FindByCode(ctx, code)
	if err != nil {
		return domain.Code{}, err
	}
	return p.toDomain(c), nil
}

func (p *pickupCodeRepository) FindByOrderID(ctx context.Context, orderID int64) (domain.Code, error) {
	c, err := p.d.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Code{}, err
	}
	return p.toDomain(c), nil
}

func (p *pickupCodeRepository) Redeem(ctx context.Context, code string, redeemerID int64) (domain.Code, error) {
	c, err := p.d.RedeemByCode(ctx, code, redeemerID)
	if err != nil {
		return domain.Code{}, err
	}
	return p.toDomain(c), nil
}

func (p *pickupCodeRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return p.d.DeleteByOrderID(ctx, orderID)
}

func (p *pickupCodeRepository) HasRedeemLog(ctx context.Context, code string) (bool, error) {
	_, err := p.d.FindRedeemLogByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dao.ErrCodeNotFound) {
		return false, nil
	}
	return false, err
}

func (p *pickupCodeRepository) toEntity(c domain.Code) dao.PickupCode {
	return dao.PickupCode{
		Id:      c.ID,
		OrderId: c.OrderID,
		OrderSn: c.OrderSN,
		Code:    c.Code,
	}
}

func (p *pickupCodeRepository) toDomain(c dao.PickupCode) domain.Code {
	return domain.Code{
		ID:      c.Id,
		OrderID: c.OrderId,
		OrderSN: c.OrderSn,
		Code:    c.Code,
		Ctime:   c.Ctime,
		Utime:   c.Utime,
	}
}
