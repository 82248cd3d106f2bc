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

	"github.com/ecodeclub/estore/internal/quiz/internal/domain"
	"github.com/ecodeclub/estore/internal/quiz/internal/repository"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidAttempt = domain.ErrInvalidAttempt

//go:generate mockgen -source=./service.go -destination=../../mocks/quiz.mock.go -package=quizmocks -typed=false Service
type Service interface {
	// Submit 提交答题, 算定得分与是否通过后落库
	Submit(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error)
	ListAttempts(ctx context.Context, uid int64, offset, limit int) ([]domain.Attempt, int64, error)
	FindBestAttempt(ctx context.Context, uid, quizID int64) (domain.Attempt, error)
}

type service struct {
	repo repository.AttemptRepository
}

func NewService(repo repository.AttemptRepository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, attempt domain.Attempt) (domain.Attempt, error) {
	if err := attempt.Validate(); err != nil {
		return domain.Attempt{}, err
	}
	attempt.Grade()
	id, err := s.repo.CreateAttempt(ctx, attempt)
	if err != nil {
		return domain.Attempt{}, err
	}
	attempt.ID = id
	return attempt, nil
}

func (s *service) ListAttempts(ctx context.Context, uid int64, offset, limit int) ([]domain.Attempt, int64, error) {
	var (
		eg       errgroup.Group
		attempts []domain.Attempt
		total    int64
	)
	eg.Go(func() error {
		var err error
		attempts, err = s.repo.ListAttemptsByUID(ctx, uid, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalAttemptsByUID(ctx, uid)
		return err
	})
	return attempts, total, eg.Wait()
}

func (s *service) FindBestAttempt(ctx context.Context, uid, quizID int64) (domain.Attempt, error) {
	return s.repo.FindBestAttempt(ctx, uid, quizID)
}
