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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/repository/dao"
)

type ProductRepository interface {
	FindSPUByID(ctx context.Context, id int64) (domain.SPU, error)
	FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error)
	ListSPUs(ctx context.Context, offset, limit int) ([]domain.SPU, error)
	CountSPUs(ctx context.Context) (int64, error)
	SaveSPU(ctx context.Context, spu domain.SPU) (int64, error)
	UpdateSPUStatus(ctx context.Context, id int64, status domain.Status) error
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{dao: d}
}

type productRepository struct {
	dao dao.ProductDAO
}

func (p *productRepository) FindSPUByID(ctx context.Context, id int64) (domain.SPU, error) {
	spu, err := p.dao.FindSPUByID(ctx, id)
	if err != nil {
		return domain.SPU{}, err
	}
	return p.assembleSPU(ctx, spu)
}

func (p *productRepository) FindSPUBySN(ctx context.Context, sn string) (domain.SPU, error) {
	spu, err := p.dao.FindSPUBySN(ctx, sn)
	if err != nil {
		return domain.SPU{}, err
	}
	return p.assembleSPU(ctx, spu)
}

func (p *productRepository) assembleSPU(ctx context.Context, spu dao.SPU) (domain.SPU, error) {
	skus, err := p.dao.FindSKUsBySPUID(ctx, spu.Id)
	if err != nil {
		return domain.SPU{}, err
	}
	res := p.toSPUDomain(spu)
	res.SKUs = slice.Map(skus, func(_ int, src dao.SKU) domain.SKU {
		return p.toSKUDomain(src)
	})
	return res, nil
}

func (p *productRepository) FindSKUBySN(ctx context.Context, sn string) (domain.SKU, error) {
	sku, err := p.dao.FindSKUBySN(ctx, sn)
	if err != nil {
		return domain.SKU{}, err
	}
	return p.toSKUDomain(sku), nil
}

func (p *productRepository) ListSPUs(ctx context.Context, offset, limit int) ([]domain.SPU, error) {
	spus, err := p.dao.ListSPUs(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(spus, func(_ int, src dao.SPU) domain.SPU {
		return p.toSPUDomain(src)
	}), nil
}

func (p *productRepository) CountSPUs(ctx context.Context) (int64, error) {
	return p.dao.CountSPUs(ctx)
}

func (p *productRepository) SaveSPU(ctx context.Context, spu domain.SPU) (int64, error) {
	id, err := p.dao.CreateSPU(ctx, dao.SPU{
		SN:          spu.SN,
		Name:        spu.Name,
		Description: spu.Desc,
		Status:      spu.Status.ToUint8(),
	})
	if err != nil {
		return 0, err
	}
	for _, sku := range spu.SKUs {
		_, err = p.dao.CreateSKU(ctx, dao.SKU{
			SN:          sku.SN,
			SPUID:       id,
			Name:        sku.Name,
			Description: sku.Desc,
			Price:       sku.Price,
			Stock:       sku.Stock,
			Image:       sku.Image,
			Status:      sku.Status.ToUint8(),
		})
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (p *productRepository) UpdateSPUStatus(ctx context.Context, id int64, status domain.Status) error {
	return p.dao.UpdateSPUStatus(ctx, id, status.ToUint8())
}

func (p *productRepository) toSPUDomain(spu dao.SPU) domain.SPU {
	return domain.SPU{
		ID:     spu.Id,
		SN:     spu.SN,
		Name:   spu.Name,
		Desc:   spu.Description,
		Status: domain.Status(spu.Status),
	}
}

func (p *productRepository) toSKUDomain(sku dao.SKU) domain.SKU {
	return domain.SKU{
		ID:     sku.Id,
		SPUID:  sku.SPUID,
		SN:     sku.SN,
		Name:   sku.Name,
		Desc:   sku.Description,
		Price:  sku.Price,
		Stock:  sku.Stock,
		Image:  sku.Image,
		Status: domain.Status(sku.Status),
	}
}
