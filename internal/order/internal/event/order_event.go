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

package event

const OrderStatusEventName = "order_status_events"

// 订单生命周期事件类型
const (
	TypeOrderCreated    = "order_created"
	TypeBillUploaded    = "bill_uploaded"
	TypePaymentVerified = "payment_verified"
	TypePaymentRejected = "payment_rejected"
	TypeStatusChanged   = "status_changed"
	TypeOrderCompleted  = "order_completed"
	TypeOrderCanceled   = "order_canceled"
	TypeOrderRefunded   = "order_refunded"
)

// OrderStatusEvent 订单状态变更事件, 由通知模块消费
type OrderStatusEvent struct {
	OrderSN string `json:"orderSN"`
	BuyerID int64  `json:"buyerID"`
	Type    string `json:"type"`
	// Status 事件发生后的订单状态
	Status uint8 `json:"status"`
	// Detail 面向买家的补充说明, 可为空
	Detail string `json:"detail"`
}
