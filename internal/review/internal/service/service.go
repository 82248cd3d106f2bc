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

	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ecodeclub/estore/internal/review/internal/repository"
	"github.com/ecodeclub/estore/internal/review/internal/repository/dao"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidRating       = domain.ErrInvalidRating
	ErrReviewNotFound      = dao.ErrReviewNotFound
	ErrInvalidReviewStatus = dao.ErrInvalidReviewStatus
)

//go:generate mockgen -source=./service.go -destination=../../mocks/review.mock.go -package=reviewmocks -typed=false Service
type Service interface {
	// CreateReview 创建评价, 初始状态为待审核
	CreateReview(ctx context.Context, review domain.Review) (int64, error)
	// ListApprovedReviews 商品页的已发布评价, 按时间倒序
	ListApprovedReviews(ctx context.Context, skuSN string, offset, limit int) ([]domain.Review, int64, error)
	ListReviewsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Review, error)
	ListPendingReviews(ctx context.Context, offset, limit int) ([]domain.Review, int64, error)
	ApproveReview(ctx context.Context, id int64) error
	RejectReview(ctx context.Context, id int64) error
	// VoteHelpful 有用投票, 只对已发布评价生效
	VoteHelpful(ctx context.Context, id int64) error
}

type service struct {
	repo repository.ReviewRepository
}

func NewService(repo repository.ReviewRepository) Service {
	return &service{repo: repo}
}

func (s *service) CreateReview(ctx context.Context, review domain.Review) (int64, error) {
	if err := review.Validate(); err != nil {
		return 0, err
	}
	review.Status = domain.PendingStatus
	return s.repo.CreateReview(ctx, review)
}

func (s *service) ListApprovedReviews(ctx context.Context, skuSN string, offset, limit int) ([]domain.Review, int64, error) {
	var (
		eg      errgroup.Group
		reviews []domain.Review
		total   int64
	)
	eg.Go(func() error {
		var err error
		reviews, err = s.repo.ListApprovedReviews(ctx, skuSN, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalApprovedReviews(ctx, skuSN)
		return err
	})
	return reviews, total, eg.Wait()
}

func (s *service) ListReviewsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Review, error) {
	return s.repo.ListReviewsByUID(ctx, uid, offset, limit)
}

func (s *service) ListPendingReviews(ctx context.Context, offset, limit int) ([]domain.Review, int64, error) {
	var (
		eg      errgroup.Group
		reviews []domain.Review
		total   int64
	)
	eg.Go(func() error {
		var err error
		reviews, err = s.repo.ListPendingReviews(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalPendingReviews(ctx)
		return err
	})
	return reviews, total, eg.Wait()
}

func (s *service) ApproveReview(ctx context.Context, id int64) error {
	return s.repo.UpdateReviewStatus(ctx, id, domain.ApprovedStatus)
}

func (s *service) RejectReview(ctx context.Context, id int64) error {
	return s.repo.UpdateReviewStatus(ctx, id, domain.RejectedStatus)
}

func (s *service) VoteHelpful(ctx context.Context, id int64) error {
	return s.repo.IncrHelpfulVotes(ctx, id)
}
