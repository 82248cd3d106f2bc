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
	"fmt"
	"time"

	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound          = gorm.ErrRecordNotFound
	ErrInvalidPaymentStatus   = errors.New("支付状态不允许该操作")
	ErrPaymentAlreadyVerified = errors.New("支付凭证已审核通过")
	ErrInvalidOrderStatus     = errors.New("订单状态不允许该操作")
	ErrOrderAlreadyCompleted  = errors.New("订单已完成")
)

type OrderDAO interface {
	CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error)
	FindOrderBySN(ctx context.Context, sn string) (Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindOrderByID(ctx context.Context, id int64) (Order, error)
	FindOrderItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	List(ctx context.Context, offset, limit int, buyerID int64) ([]Order, error)
	Count(ctx context.Context, buyerID int64) (int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]Order, error)
	CountAll(ctx context.Context) (int64, error)
	ListByPaymentStatus(ctx context.Context, status uint8, offset, limit int) ([]Order, error)
	CountByPaymentStatus(ctx context.Context, status uint8) (int64, error)

	// UpdatePaymentBill 上传/重传转账凭证。
	// 仅当支付状态为"待支付"或"已拒绝"时生效, 生效后支付状态进入"待审核"
	UpdatePaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error
	// MarkPaymentVerified 审核通过。条件更新, 只会从"待审核"迁移
	MarkPaymentVerified(ctx context.Context, sn string, adminNotes string) (Order, error)
	// MarkPaymentRejected 审核拒绝, 订单退回"待支付"并清除自提码
	MarkPaymentRejected(ctx context.Context, sn string, reason string, adminNotes string) (Order, error)
	// AdvanceOrderStatus 履约单向推进, 以from做条件防止并发下互相覆盖
	AdvanceOrderStatus(ctx context.Context, sn string, from, to uint8, deliveryStatus uint8, deliveredAt int64) error
	// CompleteOrder 自提核销完成订单
	CompleteOrder(ctx context.Context, orderID int64, notes string) (Order, error)
	CancelOrder(ctx context.Context, buyerID int64, orderID int64) error
	RefundOrder(ctx context.Context, sn string, reason string) error
	SetPickupCode(ctx context.Context, orderID int64, code string) error
	AppendInternalNotes(ctx context.Context, sn string, notes string) error

	ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]Order, error)
	TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error)
	CloseExpiredOrders(ctx context.Context, orderIDs []int64) error
}

type gormOrderDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &gormOrderDAO{db: db}
}

func (g *gormOrderDAO) CreateOrder(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	o.Ctime, o.Utime = now, now
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("创建订单主记录失败: %w", err)
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("创建订单项失败: %w", err)
		}
		return nil
	})
	return o.Id, err
}

func (g *gormOrderDAO) FindOrderBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "sn = ?", sn).Error
	return res, err
}

func (g *gormOrderDAO) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "sn = ? AND buyer_id = ?", sn, buyerID).Error
	return res, err
}

func (g *gormOrderDAO) FindOrderByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (g *gormOrderDAO) FindOrderItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var res []OrderItem
	err := g.db.WithContext(ctx).Order("id ASC").Find(&res, "order_id = ?", orderID).Error
	return res, err
}

func (g *gormOrderDAO) List(ctx context.Context, offset, limit int, buyerID int64) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Order("id DESC").
		Offset(offset).Limit(limit).Find(&res, "buyer_id = ?", buyerID).Error
	return res, err
}

func (g *gormOrderDAO) Count(ctx context.Context, buyerID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", buyerID).Count(&count).Error
	return count, err
}

func (g *gormOrderDAO) ListAll(ctx context.Context, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).Count(&count).Error
	return count, err
}

func (g *gormOrderDAO) ListByPaymentStatus(ctx context.Context, status uint8, offset, limit int) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Order("id ASC").
		Offset(offset).Limit(limit).Find(&res, "payment_status = ?", status).Error
	return res, err
}

func (g *gormOrderDAO) CountByPaymentStatus(ctx context.Context, status uint8) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).Where("payment_status = ?", status).Count(&count).Error
	return count, err
}

func (g *gormOrderDAO) UpdatePaymentBill(ctx context.Context, buyerID int64, sn string, billImage string) error {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND buyer_id = ? AND payment_status IN ?", sn, buyerID,
			[]uint8{domain.PaymentStatusPending.ToUint8(), domain.PaymentStatusRejected.ToUint8()}).
		Updates(map[string]any{
			"bill_image":       billImage,
			"bill_uploaded_at": now,
			"payment_status":   domain.PaymentStatusPendingVerification.ToUint8(),
			"rejection_reason": "",
			"utime":            now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.FindOrderBySNAndBuyerID(ctx, sn, buyerID); err != nil {
			return err
		}
		return ErrInvalidPaymentStatus
	}
	return nil
}

func (g *gormOrderDAO) MarkPaymentVerified(ctx context.Context, sn string, adminNotes string) (Order, error) {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND payment_status = ?", sn, domain.PaymentStatusPendingVerification.ToUint8()).
		Updates(map[string]any{
			"payment_status":      domain.PaymentStatusVerified.ToUint8(),
			"bill_verified_at":    now,
			"status":              domain.OrderStatusConfirmed.ToUint8(),
			"delivery_status":     domain.DeliveryStatusConfirmed.ToUint8(),
			"payment_admin_notes": adminNotes,
			"utime":               now,
		})
	if res.Error != nil {
		return Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		err := g.classifyPaymentFailure(ctx, sn, func(status uint8) error {
			if status == domain.PaymentStatusVerified.ToUint8() {
				return ErrPaymentAlreadyVerified
			}
			return ErrInvalidPaymentStatus
		})
		return Order{}, err
	}
	return g.FindOrderBySN(ctx, sn)
}

func (g *gormOrderDAO) MarkPaymentRejected(ctx context.Context, sn string, reason string, adminNotes string) (Order, error) {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND payment_status = ?", sn, domain.PaymentStatusPendingVerification.ToUint8()).
		Updates(map[string]any{
			"payment_status":      domain.PaymentStatusRejected.ToUint8(),
			"status":              domain.OrderStatusPendingPayment.ToUint8(),
			"delivery_status":     domain.DeliveryStatusPending.ToUint8(),
			"rejection_reason":    reason,
			"payment_admin_notes": adminNotes,
			"pickup_code":         "",
			"utime":               now,
		})
	if res.Error != nil {
		return Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		err := g.classifyPaymentFailure(ctx, sn, func(status uint8) error {
			if status == domain.PaymentStatusVerified.ToUint8() {
				return ErrPaymentAlreadyVerified
			}
			return ErrInvalidPaymentStatus
		})
		return Order{}, err
	}
	return g.FindOrderBySN(ctx, sn)
}

// classifyPaymentFailure 条件更新没有命中任何行时, 回读订单区分失败原因
func (g *gormOrderDAO) classifyPaymentFailure(ctx context.Context, sn string, classify func(paymentStatus uint8) error) error {
	o, err := g.FindOrderBySN(ctx, sn)
	if err != nil {
		return err
	}
	return classify(o.PaymentStatus)
}

func (g *gormOrderDAO) AdvanceOrderStatus(ctx context.Context, sn string, from, to uint8, deliveryStatus uint8, deliveredAt int64) error {
	now := time.Now().UnixMilli()
	updates := map[string]any{
		"status":          to,
		"delivery_status": deliveryStatus,
		"utime":           now,
	}
	if deliveredAt > 0 {
		updates["delivered_at"] = deliveredAt
	}
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND status = ?", sn, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.FindOrderBySN(ctx, sn); err != nil {
			return err
		}
		// 并发下订单已被其他操作迁移
		return ErrInvalidOrderStatus
	}
	return nil
}

func (g *gormOrderDAO) CompleteOrder(ctx context.Context, orderID int64, notes string) (Order, error) {
	now := time.Now().UnixMilli()
	completable := []uint8{
		domain.OrderStatusConfirmed.ToUint8(),
		domain.OrderStatusProcessing.ToUint8(),
		domain.OrderStatusReady.ToUint8(),
	}
	updates := map[string]any{
		"status":          domain.OrderStatusCompleted.ToUint8(),
		"payment_status":  domain.PaymentStatusCompleted.ToUint8(),
		"delivery_status": domain.DeliveryStatusDelivered.ToUint8(),
		"delivered_at":    now,
		"utime":           now,
	}
	if notes != "" {
		updates["internal_notes"] = gorm.Expr("CONCAT(internal_notes, ?)", "\n"+notes)
	}
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status IN ?", orderID, completable).
		Updates(updates)
	if res.Error != nil {
		return Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		o, err := g.FindOrderByID(ctx, orderID)
		if err != nil {
			return Order{}, err
		}
		if o.Status == domain.OrderStatusCompleted.ToUint8() {
			return Order{}, ErrOrderAlreadyCompleted
		}
		return Order{}, ErrInvalidOrderStatus
	}
	return g.FindOrderByID(ctx, orderID)
}

func (g *gormOrderDAO) CancelOrder(ctx context.Context, buyerID int64, orderID int64) error {
	now := time.Now().UnixMilli()
	terminal := []uint8{
		domain.OrderStatusCompleted.ToUint8(),
		domain.OrderStatusDelivered.ToUint8(),
		domain.OrderStatusCanceled.ToUint8(),
		domain.OrderStatusRefunded.ToUint8(),
	}
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND buyer_id = ? AND status NOT IN ?", orderID, buyerID, terminal).
		Updates(map[string]any{
			"status":         domain.OrderStatusCanceled.ToUint8(),
			"payment_status": domain.PaymentStatusCanceled.ToUint8(),
			"pickup_code":    "",
			"utime":          now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.FindOrderByID(ctx, orderID); err != nil {
			return err
		}
		return ErrInvalidOrderStatus
	}
	return nil
}

func (g *gormOrderDAO) RefundOrder(ctx context.Context, sn string, reason string) error {
	now := time.Now().UnixMilli()
	terminal := []uint8{
		domain.OrderStatusCompleted.ToUint8(),
		domain.OrderStatusDelivered.ToUint8(),
		domain.OrderStatusCanceled.ToUint8(),
		domain.OrderStatusRefunded.ToUint8(),
	}
	updates := map[string]any{
		"status":         domain.OrderStatusRefunded.ToUint8(),
		"payment_status": domain.PaymentStatusRefunded.ToUint8(),
		"pickup_code":    "",
		"utime":          now,
	}
	if reason != "" {
		updates["internal_notes"] = gorm.Expr("CONCAT(internal_notes, ?)", "\n"+reason)
	}
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ? AND status NOT IN ?", sn, terminal).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := g.FindOrderBySN(ctx, sn); err != nil {
			return err
		}
		return ErrInvalidOrderStatus
	}
	return nil
}

func (g *gormOrderDAO) SetPickupCode(ctx context.Context, orderID int64, code string) error {
	return g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"pickup_code": code,
			"utime":       time.Now().UnixMilli(),
		}).Error
}

func (g *gormOrderDAO) AppendInternalNotes(ctx context.Context, sn string, notes string) error {
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ?", sn).
		Updates(map[string]any{
			"internal_notes": gorm.Expr("CONCAT(internal_notes, ?)", "\n"+notes),
			"utime":          time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (g *gormOrderDAO) ListExpiredOrders(ctx context.Context, offset, limit int, ctime int64) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).
		Find(&res, "status = ? AND ctime < ?", domain.OrderStatusPendingPayment.ToUint8(), ctime).Error
	return res, err
}

func (g *gormOrderDAO) TotalExpiredOrders(ctx context.Context, ctime int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Order{}).
		Where("status = ? AND ctime < ?", domain.OrderStatusPendingPayment.ToUint8(), ctime).
		Count(&count).Error
	return count, err
}

func (g *gormOrderDAO) CloseExpiredOrders(ctx context.Context, orderIDs []int64) error {
	return g.db.WithContext(ctx).Model(&Order{}).
		Where("id IN ? AND status = ?", orderIDs, domain.OrderStatusPendingPayment.ToUint8()).
		Updates(map[string]any{
			"status":         domain.OrderStatusCanceled.ToUint8(),
			"payment_status": domain.PaymentStatusCanceled.ToUint8(),
			"utime":          time.Now().UnixMilli(),
		}).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}

type Order struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN      string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号"`
	BuyerId int64  `gorm:"not null;index:idx_buyer_id;comment:购买者ID"`

	Subtotal int64 `gorm:"not null;comment:商品小计;单位为分"`
	Tax      int64 `gorm:"not null;comment:税费;单位为分"`
	Shipping int64 `gorm:"not null;comment:运费;单位为分"`
	Discount int64 `gorm:"not null;comment:优惠金额;单位为分"`
	Total    int64 `gorm:"not null;comment:应付总额;单位为分"`

	Status uint8 `gorm:"type:tinyint unsigned;not null;default:1;index:idx_status;comment:订单状态"`

	PaymentMethod     uint8  `gorm:"type:tinyint unsigned;not null;comment:支付方式 1=银行转账 2=到店付款"`
	PaymentStatus     uint8  `gorm:"type:tinyint unsigned;not null;default:1;index:idx_payment_status;comment:支付状态"`
	BillImage         string `gorm:"type:varchar(512);not null;default:'';comment:转账凭证引用"`
	BillUploadedAt    int64  `gorm:"not null;default:0;comment:凭证上传时间"`
	BillVerifiedAt    int64  `gorm:"not null;default:0;comment:凭证审核通过时间"`
	RejectionReason   string `gorm:"type:varchar(512);not null;default:'';comment:审核拒绝原因"`
	PaymentAdminNotes string `gorm:"type:varchar(512);not null;default:'';comment:审核备注,仅管理端可见"`

	DeliveryMethod uint8  `gorm:"type:tinyint unsigned;not null;comment:配送方式 1=宅配 2=到店自提 3=快递"`
	DeliveryStatus uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:配送状态"`
	PickupCode     string `gorm:"type:varchar(8);not null;default:'';index:idx_pickup_code;comment:自提码冗余,权威记录在pickup_codes表"`
	Address        string `gorm:"type:varchar(512);not null;default:'';comment:配送地址"`
	DeliveredAt    int64  `gorm:"not null;default:0;comment:送达或自提完成时间"`

	CustomerNotes string `gorm:"type:varchar(512);not null;default:'';comment:买家备注"`
	InternalNotes string `gorm:"type:text;comment:内部备注,仅管理端可见"`

	Ctime int64
	Utime int64
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	SPUId     int64  `gorm:"not null;comment:SPU自增ID"`
	SKUId     int64  `gorm:"not null;index:idx_sku_id;comment:SKU自增ID"`
	SKUSN     string `gorm:"type:varchar(255);not null;comment:SKU序列号"`
	SKUName   string `gorm:"type:varchar(255);not null;comment:SKU名称"`
	SKUImage  string `gorm:"type:varchar(512);not null;default:'';comment:SKU图片"`
	SKUPrice  int64  `gorm:"not null;comment:下单时单价;单位为分"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	LineTotal int64  `gorm:"not null;comment:单项小计;单位为分"`
	Ctime     int64
	Utime     int64
}
