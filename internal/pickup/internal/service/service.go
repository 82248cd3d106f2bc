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

package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/ecodeclub/estore/internal/pickup/internal/domain"
	"github.com/ecodeclub/estore/internal/pickup/internal/repository"
	"github.com/ecodeclub/estore/internal/pickup/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrCodeNotFound = errors.New("自提码不存在")
	ErrCodeRedeemed = errors.New("自提码已核销")
	// ErrCodeSpaceExhausted 多次重试后仍然与活跃订单冲突
	ErrCodeSpaceExhausted = errors.New("自提码命名空间耗尽")
)

// maxMintAttempts 生成冲突时的重试上限
const maxMintAttempts = 32

// GenerateFunc 生成一个候选自提码
type GenerateFunc func() (string, error)

//go:generate mockgen -source=./service.go -package=pickupmocks -destination=../../mocks/pickup.mock.go Service
type Service interface {
	// Mint 为订单生成自提码, 同一订单重复调用返回已有的活跃码
	Mint(ctx context.Context, orderID int64, orderSN string) (domain.Code, error)
	// FindActiveByCode 查找code绑定的活跃订单,
	// 区分"从未存在"(ErrCodeNotFound)与"已核销"(ErrCodeRedeemed)
	FindActiveByCode(ctx context.Context, code string) (domain.Code, error)
	// Redeem 核销自提码, 活跃码删除并写入核销记录
	Redeem(ctx context.Context, redeemerID int64, code string) (domain.Code, error)
	// InvalidateByOrderID 作废订单持有的自提码, 审核被拒或订单取消时调用
	InvalidateByOrderID(ctx context.Context, orderID int64) error
}

func NewService(repo repository.PickupCodeRepository) Service {
	return NewServiceWith(repo, randomCode)
}

func NewServiceWith(repo repository.PickupCodeRepository, genFunc GenerateFunc) Service {
	return &service{
		repo:    repo,
		genFunc: genFunc,
		logger:  elog.DefaultLogger,
	}
}

type service struct {
	repo    repository.PickupCodeRepository
	genFunc GenerateFunc
	logger  *elog.Component
}

func (s *service) Mint(ctx context.Context, orderID int64, orderSN string) (domain.Code, error) {
	for i := 0; i < maxMintAttempts; i++ {
		code, err := s.genFunc()
		if err != nil {
			return domain.Code{}, fmt.Errorf("生成自提码失败: %w", err)
		}
		c, err := s.repo.Create(ctx, domain.Code{
			OrderID: orderID,
			OrderSN: orderSN,
			Code:    code,
		})
		switch {
		case err == nil:
			return c, nil
		case errors.Is(err, dao.ErrCodeCollision):
			continue
		case errors.Is(err, dao.ErrOrderCodeExists):
			return s.repo.FindByOrderID(ctx, orderID)
		default:
			return domain.Code{}, err
		}
	}
	return domain.Code{}, fmt.Errorf("%w: order_id=%d", ErrCodeSpaceExhausted, orderID)
}

func (s *service) FindActiveByCode(ctx context.Context, code string) (domain.Code, error) {
	c, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, dao.ErrCodeNotFound) {
		return domain.Code{}, err
	}
	redeemed, err := s.repo.HasRedeemLog(ctx, code)
	if err != nil {
		return domain.Code{}, err
	}
	if redeemed {
		return domain.Code{}, fmt.Errorf("%w: %s", ErrCodeRedeemed, code)
	}
	return domain.Code{}, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
}

func (s *service) Redeem(ctx context.Context, redeemerID int64, code string) (domain.Code, error) {
	c, err := s.repo.Redeem(ctx, code, redeemerID)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, dao.ErrCodeRedeemed):
		return domain.Code{}, fmt.Errorf("%w: %s", ErrCodeRedeemed, code)
	case errors.Is(err, dao.ErrCodeNotFound):
		return domain.Code{}, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
	default:
		return domain.Code{}, err
	}
}

func (s *service) InvalidateByOrderID(ctx context.Context, orderID int64) error {
	return s.repo.DeleteByOrderID(ctx, orderID)
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", domain.CodeLength, n.Int64()), nil
}
