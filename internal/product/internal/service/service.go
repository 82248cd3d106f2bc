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

	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/repository"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	// FindSKUBySN 查找上架中的SKU, 下单时按它的当前价格计价
	FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error)
	FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error)
	ListSPUs(ctx context.Context, offset, limit int) ([]domain.SPU, error)
	CountSPUs(ctx context.Context) (int64, error)
	// SaveSPU 创建SPU及其SKU, 管理端使用
	SaveSPU(ctx context.Context, spu domain.SPU) (int64, error)
	UpdateSPUStatus(ctx context.Context, id int64, status domain.Status) error
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error) {
	return s.repo.FindSKUBySN(ctx, sn)
}

func (s *service) FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	return s.repo.FindSPUBySN(ctx, sn)
}

func (s *service) ListSPUs(ctx context.Context, offset, limit int) ([]domain.SPU, error) {
	return s.repo.ListSPUs(ctx, offset, limit)
}

func (s *service) CountSPUs(ctx context.Context) (int64, error) {
	return s.repo.CountSPUs(ctx)
}

func (s *service) SaveSPU(ctx context.Context, spu domain.SPU) (int64, error) {
	return s.repo.SaveSPU(ctx, spu)
}

func (s *service) UpdateSPUStatus(ctx context.Context, id int64, status domain.Status) error {
	return s.repo.UpdateSPUStatus(ctx, id, status)
}
