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

package service

import (
	"context"

	"github.com/ecodeclub/estore/internal/notification/internal/domain"
	"github.com/ecodeclub/estore/internal/notification/internal/repository"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=./service.go -package=notificationmocks -destination=../../mocks/notification.mock.go Service
type Service interface {
	Create(ctx context.Context, n domain.Notification) (int64, error)
	List(ctx context.Context, uid int64, offset, limit int) (int64, []domain.Notification, error)
	TotalUnread(ctx context.Context, uid int64) (int64, error)
	MarkRead(ctx context.Context, uid int64, id int64) error
	MarkAllRead(ctx context.Context, uid int64) error
}

func NewService(repo repository.NotificationRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.NotificationRepository
}

func (s *service) Create(ctx context.Context, n domain.Notification) (int64, error) {
	return s.repo.Create(ctx, n)
}

func (s *service) List(ctx context.Context, uid int64, offset, limit int) (int64, []domain.Notification, error) {
	var (
		eg    errgroup.Group
		total int64
		ns    []domain.Notification
	)
	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx, uid)
		return err
	})
	eg.Go(func() error {
		var err error
		ns, err = s.repo.List(ctx, uid, offset, limit)
		return err
	})
	return total, ns, eg.Wait()
}

func (s *service) TotalUnread(ctx context.Context, uid int64) (int64, error) {
	return s.repo.TotalUnread(ctx, uid)
}

func (s *service) MarkRead(ctx context.Context, uid int64, id int64) error {
	return s.repo.MarkRead(ctx, uid, id)
}

func (s *service) MarkAllRead(ctx context.Context, uid int64) error {
	return s.repo.MarkAllRead(ctx, uid)
}
