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

package domain

import "errors"

var (
	ErrEmptyItems       = errors.New("订单项为空")
	ErrInvalidQuantity  = errors.New("购买数量非法")
	ErrInvalidPrice     = errors.New("商品价格非法")
	ErrAmountMismatch   = errors.New("订单金额不一致")
	ErrNegativeAmount   = errors.New("订单金额为负数")
	ErrInvalidLineTotal = errors.New("订单项小计非法")
)

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// OrderStatusPendingPayment 待支付, 创建订单后的初始状态
	OrderStatusPendingPayment OrderStatus = iota + 1
	// OrderStatusConfirmed 支付凭证审核通过
	OrderStatusConfirmed
	// OrderStatusProcessing 备货中
	OrderStatusProcessing
	// OrderStatusReady 可自提
	OrderStatusReady
	// OrderStatusShipped 已发货
	OrderStatusShipped
	// OrderStatusOutForDelivery 配送中
	OrderStatusOutForDelivery
	// OrderStatusDelivered 已送达
	OrderStatusDelivered
	// OrderStatusCompleted 已完成, 自提订单核销后进入
	OrderStatusCompleted
	// OrderStatusCanceled 已取消
	OrderStatusCanceled
	// OrderStatusRefunded 已退款
	OrderStatusRefunded
)

// IsTerminal 终态订单不允许再发生任何状态迁移
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusDelivered, OrderStatusCanceled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// fulfillmentTransitions 履约状态只能沿着这张表单向前进
var fulfillmentTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusConfirmed:      {OrderStatusProcessing},
	OrderStatusProcessing:     {OrderStatusReady, OrderStatusShipped},
	OrderStatusReady:          {OrderStatusCompleted},
	OrderStatusShipped:        {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// CanAdvanceTo 判断能否从当前履约状态前进到next, 不允许后退或跳跃
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	for _, n := range fulfillmentTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// PaymentStatusPending 等待买家上传转账凭证
	PaymentStatusPending PaymentStatus = iota + 1
	// PaymentStatusPendingVerification 凭证已上传, 等待管理员审核
	PaymentStatusPendingVerification
	// PaymentStatusVerified 审核通过
	PaymentStatusVerified
	// PaymentStatusRejected 审核被拒, 买家可重新上传
	PaymentStatusRejected
	PaymentStatusCompleted
	PaymentStatusFailed
	PaymentStatusRefunded
	PaymentStatusCanceled
)

// CanUploadBill 只有尚未提交凭证或被拒后才允许(重新)上传
func (s PaymentStatus) CanUploadBill() bool {
	return s == PaymentStatusPending || s == PaymentStatusRejected
}

type PaymentMethod uint8

func (m PaymentMethod) ToUint8() uint8 {
	return uint8(m)
}

const (
	// PaymentMethodBankTransfer 银行转账, 需要上传凭证并人工审核
	PaymentMethodBankTransfer PaymentMethod = iota + 1
	// PaymentMethodCashOnPickup 到店付款
	PaymentMethodCashOnPickup
)

type DeliveryMethod uint8

func (m DeliveryMethod) ToUint8() uint8 {
	return uint8(m)
}

const (
	DeliveryMethodHome DeliveryMethod = iota + 1
	DeliveryMethodStorePickup
	DeliveryMethodExpress
)

// RequiresPickup 自提类订单在审核通过时要生成自提码
func (m DeliveryMethod) RequiresPickup() bool {
	return m == DeliveryMethodStorePickup
}

// RequiresAddress 需要配送地址
func (m DeliveryMethod) RequiresAddress() bool {
	return m == DeliveryMethodHome || m == DeliveryMethodExpress
}

type DeliveryStatus uint8

func (s DeliveryStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	DeliveryStatusPending DeliveryStatus = iota + 1
	DeliveryStatusConfirmed
	DeliveryStatusShipped
	DeliveryStatusOutForDelivery
	DeliveryStatusDelivered
)

type Order struct {
	ID       int64
	SN       string
	BuyerID  int64
	Items    []OrderItem
	Subtotal int64
	Tax      int64
	Shipping int64
	Discount int64
	Total    int64
	Status   OrderStatus
	Payment  Payment
	Delivery Delivery

	CustomerNotes string
	InternalNotes string

	Ctime int64
	Utime int64
}

type OrderItem struct {
	SKU       SKU
	LineTotal int64
}

type SKU struct {
	SPUID    int64
	ID       int64
	SN       string
	Name     string
	Image    string
	Price    int64
	Quantity int64
}

type Payment struct {
	Method PaymentMethod
	Status PaymentStatus
	// BillImage 买家上传的转账凭证, 由外部上传服务给出的引用
	BillImage       string
	BillUploadedAt  int64
	BillVerifiedAt  int64
	RejectionReason string
	AdminNotes      string
}

type Delivery struct {
	Method DeliveryMethod
	Status DeliveryStatus
	// PickupCode 4位数字自提码, 审核通过时生成, 活跃订单间唯一
	PickupCode  string
	Address     string
	DeliveredAt int64
}

// Validate 校验订单自身的不变量:
// Total = Subtotal + Tax + Shipping - Discount 且恒为非负
func (o Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	var subtotal int64
	for _, it := range o.Items {
		if it.SKU.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if it.SKU.Price < 0 {
			return ErrInvalidPrice
		}
		if it.LineTotal != it.SKU.Price*it.SKU.Quantity {
			return ErrInvalidLineTotal
		}
		subtotal += it.LineTotal
	}
	if subtotal != o.Subtotal {
		return ErrAmountMismatch
	}
	if o.Total != o.Subtotal+o.Tax+o.Shipping-o.Discount {
		return ErrAmountMismatch
	}
	if o.Total < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// DeliveryConsistent 配送状态不允许领先于支付审核
func (o Order) DeliveryConsistent() bool {
	if o.Payment.Status == PaymentStatusVerified {
		return true
	}
	return o.Delivery.Status == DeliveryStatusPending
}
