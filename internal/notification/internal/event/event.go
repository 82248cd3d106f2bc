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

// 订单模块发出的事件类型, 这里只消费买家可见的那部分
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

type OrderStatusEvent struct {
	OrderSN string `json:"orderSN"`
	BuyerID int64  `json:"buyerID"`
	Type    string `json:"type"`
	Status  uint8  `json:"status"`
	Detail  string `json:"detail"`
}
