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

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/estore/internal/notification/internal/domain"
	"github.com/ecodeclub/estore/internal/notification/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// OrderStatusEventConsumer 把订单状态事件转成买家可见的站内通知
type OrderStatusEventConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewOrderStatusEventConsumer(svc service.Service, q mq.MQ) (*OrderStatusEventConsumer, error) {
	groupID := "notification-order-status"
	consumer, err := q.Consumer(OrderStatusEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &OrderStatusEventConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

// Start 后面要考虑借助 ctx 来优雅退出
func (c *OrderStatusEventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if err != nil {
				c.logger.Error("消费订单状态事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *OrderStatusEventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return err
	}

	var evt OrderStatusEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析订单状态事件失败: %w", err)
	}

	n, ok := c.toNotification(evt)
	if !ok {
		return nil
	}
	_, err = c.svc.Create(ctx, n)
	return err
}

func (c *OrderStatusEventConsumer) toNotification(evt OrderStatusEvent) (domain.Notification, bool) {
	n := domain.Notification{
		UID:     evt.BuyerID,
		OrderSN: evt.OrderSN,
		Type:    evt.Type,
	}
	switch evt.Type {
	case TypeOrderCreated:
		n.Title = "订单创建成功"
		n.Content = "请尽快完成转账并上传凭证, 超时未支付的订单会被自动关闭"
	case TypePaymentVerified:
		n.Title = "支付凭证审核通过"
		if evt.Detail != "" {
			n.Content = fmt.Sprintf("你的自提码是 %s, 到店出示即可提货", evt.Detail)
		}
	case TypePaymentRejected:
		n.Title = "支付凭证审核未通过"
		n.Content = fmt.Sprintf("原因: %s, 请重新上传凭证", evt.Detail)
	case TypeStatusChanged:
		n.Title = "订单状态更新"
	case TypeOrderCompleted:
		n.Title = "订单已完成"
		n.Content = "感谢惠顾"
	case TypeOrderCanceled:
		n.Title = "订单已取消"
	case TypeOrderRefunded:
		n.Title = "订单已退款"
		n.Content = evt.Detail
	default:
		// 凭证上传等管理端事件不打扰买家
		return domain.Notification{}, false
	}
	return n, true
}
