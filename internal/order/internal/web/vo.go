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

package web

// PreviewOrderReq 下单前预览, 按商品当前价格试算金额
type PreviewOrderReq struct {
	SKUs []SKU `json:"skus"`
	// DeliveryMethod 1=宅配 2=到店自提 3=快递
	DeliveryMethod uint8 `json:"deliveryMethod"`
}

type PreviewOrderResp struct {
	SKUs     []SKU `json:"skus"`
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// CreateOrderReq 创建订单请求, 金额一律由服务端计算
type CreateOrderReq struct {
	RequestID string `json:"requestID"` // 请求去重,防止订单重复提交
	SKUs      []SKU  `json:"skus"`
	// PaymentMethod 1=银行转账 2=到店付款
	PaymentMethod uint8 `json:"paymentMethod"`
	// DeliveryMethod 1=宅配 2=到店自提 3=快递
	DeliveryMethod uint8  `json:"deliveryMethod"`
	Address        string `json:"address,omitempty"`
	CustomerNotes  string `json:"customerNotes,omitempty"`
}

type CreateOrderResp struct {
	OrderSN string `json:"orderSN"`
	// Total 应付总额, 单位为分
	Total int64 `json:"total"`
}

type SKU struct {
	SN       string `json:"sn"`
	Image    string `json:"image,omitempty"`
	Name     string `json:"name,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Quantity int64  `json:"quantity"`
}

// RetrieveOrderStatusReq 获取订单状态
type RetrieveOrderStatusReq struct {
	OrderSN string `json:"sn"`
}

type RetrieveOrderStatusResp struct {
	OrderStatus   uint8 `json:"status"`
	PaymentStatus uint8 `json:"paymentStatus"`
}

// ListOrdersReq 分页查询订单
type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

// RetrieveOrderDetailReq 获取订单详情
type RetrieveOrderDetailReq struct {
	OrderSN string `json:"sn"`
}

type RetrieveOrderDetailResp struct {
	Order Order `json:"order"`
}

// UploadBillReq 上传/重传转账凭证
type UploadBillReq struct {
	OrderSN   string `json:"sn"`
	BillImage string `json:"billImage"`
}

// CancelOrderReq 取消订单
type CancelOrderReq struct {
	OrderSN string `json:"sn"`
}

type Order struct {
	SN       string      `json:"sn"`
	Subtotal int64       `json:"subtotal"`
	Tax      int64       `json:"tax"`
	Shipping int64       `json:"shipping"`
	Discount int64       `json:"discount"`
	Total    int64       `json:"total"`
	Status   uint8       `json:"status"`
	Payment  Payment     `json:"payment"`
	Delivery Delivery    `json:"delivery"`
	Items    []OrderItem `json:"items"`

	CustomerNotes string `json:"customerNotes,omitempty"`
	// InternalNotes 仅管理端填充
	InternalNotes string `json:"internalNotes,omitempty"`

	Ctime int64 `json:"ctime"`
	Utime int64 `json:"utime"`
}

type Payment struct {
	Method          uint8  `json:"method"`
	Status          uint8  `json:"status"`
	BillImage       string `json:"billImage,omitempty"`
	BillUploadedAt  int64  `json:"billUploadedAt,omitempty"`
	BillVerifiedAt  int64  `json:"billVerifiedAt,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	// AdminNotes 仅管理端填充
	AdminNotes string `json:"adminNotes,omitempty"`
}

type Delivery struct {
	Method      uint8  `json:"method"`
	Status      uint8  `json:"status"`
	PickupCode  string `json:"pickupCode,omitempty"`
	Address     string `json:"address,omitempty"`
	DeliveredAt int64  `json:"deliveredAt,omitempty"`
}

type OrderItem struct {
	SKU       SKU   `json:"sku"`
	LineTotal int64 `json:"lineTotal"`
}

// VerifyPaymentReq 审核通过转账凭证
type VerifyPaymentReq struct {
	OrderSN    string `json:"sn"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

type VerifyPaymentResp struct {
	OrderStatus uint8 `json:"status"`
	// PickupCode 自提订单审核通过时生成
	PickupCode string `json:"pickupCode,omitempty"`
}

// RejectPaymentReq 拒绝转账凭证
type RejectPaymentReq struct {
	OrderSN    string `json:"sn"`
	Reason     string `json:"reason"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

// AdvanceOrderReq 推进履约状态
type AdvanceOrderReq struct {
	OrderSN string `json:"sn"`
	// Status 目标状态
	Status uint8 `json:"status"`
}

// RefundOrderReq 订单退款
type RefundOrderReq struct {
	OrderSN string `json:"sn"`
	Reason  string `json:"reason,omitempty"`
}

// AppendNotesReq 追加内部备注
type AppendNotesReq struct {
	OrderSN string `json:"sn"`
	Notes   string `json:"notes"`
}

// VerifyPickupCodeReq 店员查验自提码
type VerifyPickupCodeReq struct {
	Code string `json:"code"`
}

type VerifyPickupCodeResp struct {
	Order Order `json:"order"`
}

// RedeemPickupCodeReq 核销自提码完成订单
type RedeemPickupCodeReq struct {
	Code  string `json:"code"`
	Notes string `json:"notes,omitempty"`
}

type RedeemPickupCodeResp struct {
	Order Order `json:"order"`
}
