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
	"github.com/ecodeclub/estore/internal/review/internal/domain"
	"github.com/ecodeclub/estore/internal/review/internal/repository/dao"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, r domain.Review) (int64, error)
	FindReviewByID(ctx context.Context, id int64) (domain.Review, error)
	ListApprovedReviews(ctx context.Context, skuSN string, offset, limit int) ([]domain.Review, error)
	TotalApprovedReviews(ctx context.Context, skuSN string) (int64, error)
	ListReviewsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Review, error)
	ListPendingReviews(ctx context.Context, offset, limit int) ([]domain.Review, error)
	TotalPendingReviews(ctx context.Context) (int64, error)
	UpdateReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error
	IncrHelpfulVotes(ctx context.Context, id int64) error
}

type reviewRepository struct {
	dao dao.ReviewDAO
}

func NewRepository(d dao.ReviewDAO) ReviewRepository {
	return &reviewRepository{dao: d}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review domain.Review) (int64, error) {
	return r.dao.Insert(ctx, r.toEntity(review))
}

func (r *reviewRepository) FindReviewByID(ctx context.Context, id int64) (domain.Review, error) {
	res, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	return r.toDomain(res), nil
}

func (r *reviewRepository) ListApprovedReviews(ctx context.Context, skuSN string, offset, limit int) ([]domain.Review, error) {
	res, err := r.dao.ListApprovedBySKUSN(ctx, skuSN, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(res), nil
}

func (r *reviewRepository) TotalApprovedReviews(ctx context.Context, skuSN string) (int64, error) {
	return r.dao.CountApprovedBySKUSN(ctx, skuSN)
}

func (r *reviewRepository) ListReviewsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Review, error) {
	res, err := r.dao.ListByUID(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(res), nil
}

func (r *reviewRepository) ListPendingReviews(ctx context.Context, offset, limit int) ([]domain.Review, error) {
	res, err := r.dao.ListPending(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.toDomains(res), nil
}

func (r *reviewRepository) TotalPendingReviews(ctx context.Context) (int64, error) {
	return r.dao.CountPending(ctx)
}

func (r *reviewRepository) UpdateReviewStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	return r.dao.UpdateStatus(ctx, id, status.ToUint8())
}

func (r *reviewRepository) IncrHelpfulVotes(ctx context.Context, id int64) error {
	return r.dao.IncrHelpfulVotes(ctx, id)
}

func (r *reviewRepository) toEntity(review domain.Review) dao.Review {
	return dao.Review{
		Id:           review.ID,
		Uid:          review.UID,
		SKUSN:        review.SKUSN,
		OrderSn:      review.OrderSN,
		Rating:       review.Rating,
		Title:        review.Title,
		Content:      review.Content,
		Status:       review.Status.ToUint8(),
		HelpfulVotes: review.HelpfulVotes,
	}
}

func (r *reviewRepository) toDomain(review dao.Review) domain.Review {
	return domain.Review{
		ID:           review.Id,
		UID:          review.Uid,
		SKUSN:        review.SKUSN,
		OrderSN:      review.OrderSn,
		Rating:       review.Rating,
		Title:        review.Title,
		Content:      review.Content,
		Status:       domain.ReviewStatus(review.Status),
		HelpfulVotes: review.HelpfulVotes,
		Ctime:        review.Ctime,
		Utime:        review.Utime,
	}
}

func (r *reviewRepository) toDomains(reviews []dao.Review) []domain.Review {
	return slice.Map(reviews, func(_ int, src dao.Review) domain.Review {
		return r.toDomain(src)
	})
}
