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
	"errors"
	"time"

	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = gorm.ErrRecordNotFound
	// ErrInvalidReviewStatus 评价不处于允许该操作的状态
	ErrInvalidReviewStatus = errors.New("评价状态不允许该操作")
)

type ReviewDAO interface {
	Insert(ctx context.Context, r Review) (int64, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	// ListApprovedBySKUSN 商品页的已发布评价
	ListApprovedBySKUSN(ctx context.Context, skuSN string, offset, limit int) ([]Review, error)
	CountApprovedBySKUSN(ctx context.Context, skuSN string) (int64, error)
	ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Review, error)
	ListPending(ctx context.Context, offset, limit int) ([]Review, error)
	CountPending(ctx context.Context) (int64, error)
	// UpdateStatus 条件更新, 只允许从"待审核"迁移
	UpdateStatus(ctx context.Context, id int64, status uint8) error
	// IncrHelpfulVotes 原子自增, 只对已发布评价生效
	IncrHelpfulVotes(ctx context.Context, id int64) error
}

type gormReviewDAO struct {
	db *egorm.Component
}

func NewReviewDAO(db *egorm.Component) ReviewDAO {
	return &gormReviewDAO{db: db}
}

func (g *gormReviewDAO) Insert(ctx context.Context, r Review) (int64, error) {
	now := time.Now().UnixMilli()
	r.Ctime, r.Utime = now, now
	err := g.db.WithContext(ctx).Create(&r).Error
	return r.Id, err
}

func (g *gormReviewDAO) GetByID(ctx context.Context, id int64) (Review, error) {
	var res Review
	err := g.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (g *gormReviewDAO) ListApprovedBySKUSN(ctx context.Context, skuSN string, offset, limit int) ([]Review, error) {
	var res []Review
	err := g.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).
		Find(&res, "sku_sn = ? AND status = ?", skuSN, domain.ApprovedStatus.ToUint8()).Error
	return res, err
}

func (g *gormReviewDAO) CountApprovedBySKUSN(ctx context.Context, skuSN string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Review{}).
		Where("sku_sn = ? AND status = ?", skuSN, domain.ApprovedStatus.ToUint8()).
		Count(&count).Error
	return count, err
}

func (g *gormReviewDAO) ListByUID(ctx context.Context, uid int64, offset, limit int) ([]Review, error) {
	var res []Review
	err := g.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).
		Find(&res, "uid = ?", uid).Error
	return res, err
}

func (g *gormReviewDAO) ListPending(ctx context.Context, offset, limit int) ([]Review, error) {
	var res []Review
	err := g.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).
		Find(&res, "status = ?", domain.PendingStatus.ToUint8()).Error
	return res, err
}

func (g *gormReviewDAO) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Review{}).
		Where("status = ?", domain.PendingStatus.ToUint8()).Count(&count).Error
	return count, err
}

func (g *gormReviewDAO) UpdateStatus(ctx context.Context, id int64, status uint8) error {
	res := g.db.WithContext(ctx).Model(&Review{}).
		Where("id = ? AND status = ?", id, domain.PendingStatus.ToUint8()).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidReviewStatus
	}
	return nil
}

func (g *gormReviewDAO) IncrHelpfulVotes(ctx context.Context, id int64) error {
	res := g.db.WithContext(ctx).Model(&Review{}).
		Where("id = ? AND status = ?", id, domain.ApprovedStatus.ToUint8()).
		Updates(map[string]any{
			"helpful_votes": gorm.Expr("helpful_votes + 1"),
			"utime":         time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrInvalidReviewStatus
	}
	return nil
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Review{})
}

type Review struct {
	Id           int64  `gorm:"primaryKey;autoIncrement;comment:评价自增ID"`
	Uid          int64  `gorm:"not null;index:idx_uid;comment:评价者ID"`
	SKUSN        string `gorm:"column:sku_sn;type:varchar(255);not null;index:idx_sku_sn;comment:商品SKU序列号"`
	OrderSn      string `gorm:"type:varchar(255);not null;comment:来源订单序列号"`
	Rating       int32  `gorm:"not null;comment:评分1-5"`
	Title        string `gorm:"type:varchar(255);not null;default:'';comment:评价标题"`
	Content      string `gorm:"type:text;comment:评价正文"`
	Status       uint8  `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status;comment:状态 1=待审核 2=已发布 3=已拒绝"`
	HelpfulVotes int64  `gorm:"not null;default:0;comment:有用投票数"`
	Ctime        int64
	Utime        int64
}
