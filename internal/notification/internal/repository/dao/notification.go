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

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = gorm.ErrRecordNotFound

type NotificationDAO interface {
	Insert(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context, uid int64, offset, limit int) ([]Notification, error)
	Count(ctx context.Context, uid int64) (int64, error)
	CountUnread(ctx context.Context, uid int64) (int64, error)
	MarkRead(ctx context.Context, uid int64, id int64) error
	MarkAllRead(ctx context.Context, uid int64) error
}

type gormNotificationDAO struct {
	db *egorm.Component
}

func NewNotificationDAO(db *egorm.Component) NotificationDAO {
	return &gormNotificationDAO{db: db}
}

func (g *gormNotificationDAO) Insert(ctx context.Context, n Notification) (int64, error) {
	now := time.Now().UnixMilli()
	n.Ctime, n.Utime = now, now
	err := g.db.WithContext(ctx).Create(&n).Error
	return n.Id, err
}

func (g *gormNotificationDAO) List(ctx context.Context, uid int64, offset, limit int) ([]Notification, error) {
	var res []Notification
	err := g.db.WithContext(ctx).Order("id DESC").
		Offset(offset).Limit(limit).Find(&res, "uid = ?", uid).Error
	return res, err
}

func (g *gormNotificationDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Notification{}).Where("uid = ?", uid).Count(&count).Error
	return count, err
}

func (g *gormNotificationDAO) CountUnread(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Notification{}).
		Where("uid = ? AND read_at = 0", uid).Count(&count).Error
	return count, err
}

func (g *gormNotificationDAO) MarkRead(ctx context.Context, uid int64, id int64) error {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ? AND uid = ? AND read_at = 0", id, uid).
		Updates(map[string]any{
			"read_at": now,
			"utime":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 已读或不属于该用户, 标记已读是幂等操作, 只有完全不存在才报错
		var n Notification
		return g.db.WithContext(ctx).First(&n, "id = ? AND uid = ?", id, uid).Error
	}
	return nil
}

func (g *gormNotificationDAO) MarkAllRead(ctx context.Context, uid int64) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Model(&Notification{}).
		Where("uid = ? AND read_at = 0", uid).
		Updates(map[string]any{
			"read_at": now,
			"utime":   now,
		}).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Notification{})
}

type Notification struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:通知自增ID"`
	Uid     int64  `gorm:"not null;index:idx_uid;comment:接收者ID"`
	OrderSn string `gorm:"type:varchar(255);not null;default:'';comment:关联订单序列号"`
	Type    string `gorm:"type:varchar(64);not null;comment:事件类型"`
	Title   string `gorm:"type:varchar(255);not null;comment:通知标题"`
	Content string `gorm:"type:varchar(512);not null;default:'';comment:通知正文"`
	ReadAt  int64  `gorm:"not null;default:0;comment:已读时间,0表示未读"`
	Ctime   int64
	Utime   int64
}
