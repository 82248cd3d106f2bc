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
	"strings"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrCodeNotFound = gorm.ErrRecordNotFound
	// ErrCodeCollision 生成的码与其他活跃订单冲突, 调用方应重新生成
	ErrCodeCollision = errors.New("自提码冲突")
	// ErrOrderCodeExists 该订单已持有活跃自提码
	ErrOrderCodeExists = errors.New("订单已有自提码")
	ErrCodeRedeemed    = errors.New("自提码已核销")
)

type PickupCodeDAO interface {
	Insert(ctx context.Context, c PickupCode) (PickupCode, error)
	FindByCode(ctx context.Context, code string) (PickupCode, error)
	FindByOrderID(ctx context.Context, orderID int64) (PickupCode, error)
	// RedeemByCode 删除活跃码并写入核销记录, 两者在同一事务内
	RedeemByCode(ctx context.Context, code string, redeemerID int64) (PickupCode, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	FindRedeemLogByCode(ctx context.Context, code string) (PickupRedeemLog, error)
}

type gormPickupCodeDAO struct {
	db *egorm.Component
}

func NewPickupCodeDAO(db *egorm.Component) PickupCodeDAO {
	return &gormPickupCodeDAO{db: db}
}

func (g *gormPickupCodeDAO) Insert(ctx context.Context, c PickupCode) (PickupCode, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := g.db.WithContext(ctx).Create(&c).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			const uniqueIndexErrNo uint16 = 1062
			if me.Number == uniqueIndexErrNo {
				if strings.Contains(me.Message, "uniq_order_id") {
					return PickupCode{}, ErrOrderCodeExists
				}
				return PickupCode{}, ErrCodeCollision
			}
		}
		return PickupCode{}, err
	}
	return c, nil
}

func (g *gormPickupCodeDAO) FindByCode(ctx context.Context, code string) (PickupCode, error) {
	var res PickupCode
	err := g.db.WithContext(ctx).First(&res, "code = ?", code).Error
	return res, err
}

func (g *gormPickupCodeDAO) FindByOrderID(ctx context.Context, orderID int64) (PickupCode, error) {
	var res PickupCode
	err := g.db.WithContext(ctx).First(&res, "order_id = ?", orderID).Error
	return res, err
}

func (g *gormPickupCodeDAO) RedeemByCode(ctx context.Context, code string, redeemerID int64) (PickupCode, error) {
	now := time.Now().UnixMilli()
	var c PickupCode
	err := g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.First(&c, "code = ?", code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 活跃码不存在, 区分"从未存在"与"已核销"
				var l PickupRedeemLog
				if e := tx.First(&l, "code = ?", code).Error; e == nil {
					return ErrCodeRedeemed
				}
				return ErrCodeNotFound
			}
			return err
		}
		res := tx.Delete(&PickupCode{}, "code = ?", code)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCodeRedeemed
		}
		l := PickupRedeemLog{
			OrderId:    c.OrderId,
			OrderSn:    c.OrderSn,
			Code:       code,
			RedeemerId: redeemerID,
			Ctime:      now,
			Utime:      now,
		}
		return tx.Create(&l).Error
	})
	if err != nil {
		return PickupCode{}, err
	}
	return c, nil
}

func (g *gormPickupCodeDAO) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return g.db.WithContext(ctx).Delete(&PickupCode{}, "order_id = ?", orderID).Error
}

func (g *gormPickupCodeDAO) FindRedeemLogByCode(ctx context.Context, code string) (PickupRedeemLog, error) {
	var res PickupRedeemLog
	err := g.db.WithContext(ctx).Order("id DESC").First(&res, "code = ?", code).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&PickupCode{}, &PickupRedeemLog{})
}

// PickupCode 当前活跃的自提码。只有活跃码留在这张表里,
// 核销或作废即删除, 所以 uniq_code 的唯一性天然只约束活跃订单。
type PickupCode struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:自提码自增ID"`
	OrderId int64  `gorm:"not null;uniqueIndex:uniq_order_id;comment:订单自增ID"`
	OrderSn string `gorm:"type:varchar(255);not null;comment:订单序列号"`
	Code    string `gorm:"type:char(4);not null;uniqueIndex:uniq_code;comment:4位自提码"`
	Ctime   int64
	Utime   int64
}

type PickupRedeemLog struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:核销记录自增ID"`
	OrderId    int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	OrderSn    string `gorm:"type:varchar(255);not null;comment:订单序列号"`
	Code       string `gorm:"type:char(4);not null;index:idx_code;comment:核销时使用的自提码"`
	RedeemerId int64  `gorm:"not null;comment:核销操作的员工ID"`
	Ctime      int64
	Utime      int64
}
