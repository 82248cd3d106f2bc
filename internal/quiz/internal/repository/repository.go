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
	"github.com/ecodeclub/estore/internal/quiz/internal/domain"
	"github.com/ecodeclub/estore/internal/quiz/internal/repository/dao"
)

type AttemptRepository interface {
	CreateAttempt(ctx context.Context, a domain.Attempt) (int64, error)
	ListAttemptsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Attempt, error)
	TotalAttemptsByUID(ctx context.Context, uid int64) (int64, error)
	FindBestAttempt(ctx context.Context, uid, quizID int64) (domain.Attempt, error)
}

type attemptRepository struct {
	dao dao.AttemptDAO
}

func NewRepository(d dao.AttemptDAO) AttemptRepository {
	return &attemptRepository{dao: d}
}

func (r *attemptRepository) CreateAttempt(ctx context.Context, a domain.Attempt) (int64, error) {
	return r.dao.Insert(ctx, r.toEntity(a))
}

func (r *attemptRepository) ListAttemptsByUID(ctx context.Context, uid int64, offset, limit int) ([]domain.Attempt, error) {
	res, err := r.dao.ListByUID(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(_ int, src dao.Attempt) domain.Attempt {
		return r.toDomain(src)
	}), nil
}

func (r *attemptRepository) TotalAttemptsByUID(ctx context.Context, uid int64) (int64, error) {
	return r.dao.CountByUID(ctx, uid)
}

func (r *attemptRepository) FindBestAttempt(ctx context.Context, uid, quizID int64) (domain.Attempt, error) {
	res, err := r.dao.FindBestByUIDAndQuizID(ctx, uid, quizID)
	if err != nil {
		return domain.Attempt{}, err
	}
	return r.toDomain(res), nil
}

func (r *attemptRepository) toEntity(a domain.Attempt) dao.Attempt {
	return dao.Attempt{
		Id:           a.ID,
		Uid:          a.UID,
		QuizId:       a.QuizID,
		PointsEarned: a.PointsEarned,
		TotalPoints:  a.TotalPoints,
		PassingScore: a.PassingScore,
		Score:        a.Score,
		Passed:       a.Passed,
	}
}

func (r *attemptRepository) toDomain(a dao.Attempt) domain.Attempt {
	return domain.Attempt{
		ID:           a.Id,
		UID:          a.Uid,
		QuizID:       a.QuizId,
		PointsEarned: a.PointsEarned,
		TotalPoints:  a.TotalPoints,
		PassingScore: a.PassingScore,
		Score:        a.Score,
		Passed:       a.Passed,
		Ctime:        a.Ctime,
		Utime:        a.Utime,
	}
}
