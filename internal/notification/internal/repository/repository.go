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
	"github.com/ecodeclub/estore/internal/notification/internal/domain"
	"github.com/ecodeclub/estore/internal/notification/internal/repository/dao"
)

type NotificationRepository interface {
	Create(ctx context.Context, n domain.Notification) (int64, error)
	List(ctx context.Context, uid int64, offset, limit int) ([]domain.Notification, error)
	Total(ctx context.Context, uid int64) (int64, error)
	TotalUnread(ctx context.Context, uid int64) (int64, error)
	MarkRead(ctx context.Context, uid int64, id int64) error
	MarkAllRead(ctx context.Context, uid int64) error
}

func NewRepository(d dao.NotificationDAO) NotificationRepository {
	return &notificationRepository{dao: d}
}

type notificationRepository struct {
	dao dao.NotificationDAO
}

func (n *notificationRepository) Create(ctx context.Context, notification domain.Notification) (int64, error) {
	return n.dao.Insert(ctx, dao.Notification{
		Uid:     notification.UID,
		OrderSn: notification.OrderSN,
		Type:    notification.Type,
		Title:   notification.Title,
		Content: notification.Content,
	})
}

func (n *notificationRepository) List(ctx context.Context, uid int64, offset, limit int) ([]domain.Notification, error) {
	ns, err := n.dao.List(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ns, func(_ int, src dao.Notification) domain.Notification {
		return domain.Notification{
			ID:      src.Id,
			UID:     src.Uid,
			OrderSN: src.OrderSn,
			Type:    src.Type,
			Title:   src.Title,
			Content: src.Content,
			Read:    src.ReadAt > 0,
			Ctime:   src.Ctime,
			Utime:   src.Utime,
		}
	}), nil
}

func (n *notificationRepository) Total(ctx context.Context, uid int64) (int64, error) {
	return n.dao.Count(ctx, uid)
}

func (n *notificationRepository) TotalUnread(ctx context.Context, uid int64) (int64, error) {
	return n.dao.CountUnread(ctx, uid)
}

func (n *notificationRepository) MarkRead(ctx context.Context, uid int64, id int64) error {
	return n.dao.MarkRead(ctx, uid, id)
}

func (n *notificationRepository) MarkAllRead(ctx context.Context, uid int64) error {
	return n.dao.MarkAllRead(ctx, uid)
}
