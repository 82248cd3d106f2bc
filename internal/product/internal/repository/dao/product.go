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

package dao

import (
	"context"
	"time"

	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrProductNotFound = gorm.ErrRecordNotFound

type ProductDAO interface {
	FindSPUByID(ctx context.Context, id int64) (SPU, error)
	FindSPUBySN(ctx context.Context, sn string) (SPU, error)
	FindSKUBySN(ctx context.Context, sn string) (SKU, error)
	FindSKUsBySPUID(ctx context.Context, spuId int64) ([]SKU, error)
	ListSPUs(ctx context.Context, offset, limit int) ([]SPU, error)
	CountSPUs(ctx context.Context) (int64, error)
	CreateSPU(ctx context.Context, spu SPU) (int64, error)
	CreateSKU(ctx context.Context, sku SKU) (int64, error)
	UpdateSPUStatus(ctx context.Context, id int64, status uint8) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindSPUByID(ctx context.Context, id int64) (SPU, error) {
	var res SPU
	err := d.db.WithContext(ctx).Where("id = ? AND status = ?", id, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSPUBySN(ctx context.Context, sn string) (SPU, error) {
	var res SPU
	err := d.db.WithContext(ctx).Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUBySN(ctx context.Context, sn string) (SKU, error) {
	var res SKU
	err := d.db.WithContext(ctx).Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindSKUsBySPUID(ctx context.Context, spuId int64) ([]SKU, error) {
	var res []SKU
	err := d.db.WithContext(ctx).Where("spu_id = ? AND status = ?", spuId, domain.StatusOnShelf.ToUint8()).
		Order("ctime DESC").
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) ListSPUs(ctx context.Context, offset, limit int) ([]SPU, error) {
	var res []SPU
	err := d.db.WithContext(ctx).Where("status = ?", domain.StatusOnShelf.ToUint8()).
		Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CountSPUs(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&SPU{}).
		Where("status = ?", domain.StatusOnShelf.ToUint8()).Count(&count).Error
	return count, err
}

func (d *ProductGORMDAO) CreateSPU(ctx context.Context, spu SPU) (int64, error) {
	now := time.Now()
	spu.Utime, spu.Ctime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&spu).Error
	return spu.Id, err
}

func (d *ProductGORMDAO) CreateSKU(ctx context.Context, sku SKU) (int64, error) {
	now := time.Now()
	sku.Utime, sku.Ctime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&sku).Error
	return sku.Id, err
}

func (d *ProductGORMDAO) UpdateSPUStatus(ctx context.Context, id int64, status uint8) error {
	return d.db.WithContext(ctx).Model(&SPU{}).Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&SPU{}, &SKU{})
}

type SPU struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品SPU自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_spu_sn;comment:商品SPU序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type SKU struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品SKU自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sku_sn;comment:商品SKU序列号"`
	SPUID       int64  `gorm:"column:spu_id;not null;index:idx_spu_id;comment:商品SPU自增ID"`
	Name        string `gorm:"type:varchar(255);not null;comment:SKU名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Price       int64  `gorm:"not null;comment:商品单价;单位为分, 999表示9.99元"`
	Stock       int64  `gorm:"not null;comment:库存数量"`
	Image       string `gorm:"type:varchar(512);not null;comment:商品缩略图,CDN绝对路径"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}
