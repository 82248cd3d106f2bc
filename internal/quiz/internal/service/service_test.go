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
	"sync"
	"testing"

	"github.com/ecodeclub/estore/internal/quiz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttemptRepository struct {
	mu       sync.Mutex
	nextID   int64
	attempts []domain.Attempt
}

func newFakeAttemptRepository() *fakeAttemptRepository {
	return &fakeAttemptRepository{nextID: 1}
}

func (f *fakeAttemptRepository) CreateAttempt(_ context.Context, a domain.Attempt) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.nextID
	f.nextID++
	f.attempts = append(f.attempts, a)
	return a.ID, nil
}

func (f *fakeAttemptRepository) ListAttemptsByUID(_ context.Context, uid int64, offset, limit int) ([]domain.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []domain.Attempt
	for _, a := range f.attempts {
		if a.UID == uid {
			res = append(res, a)
		}
	}
	if offset >= len(res) {
		return nil, nil
	}
	end := offset + limit
	if end > len(res) {
		end = len(res)
	}
	return res[offset:end], nil
}

func (f *fakeAttemptRepository) TotalAttemptsByUID(_ context.Context, uid int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.attempts {
		if a.UID == uid {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttemptRepository) FindBestAttempt(_ context.Context, uid, quizID int64) (domain.Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.Attempt
	for i := range f.attempts {
		a := &f.attempts[i]
		if a.UID != uid || a.QuizID != quizID {
			continue
		}
		if best == nil || a.Score > best.Score {
			best = a
		}
	}
	if best == nil {
		return domain.Attempt{}, gorm.ErrRecordNotFound
	}
	return *best, nil
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("提交成功_得分算定", func(t *testing.T) {
		t.Parallel()
		svc := NewService(newFakeAttemptRepository())

		attempt, err := svc.Submit(context.Background(), domain.Attempt{
			UID:          1234,
			QuizID:       1,
			PointsEarned: 7,
			TotalPoints:  10,
			PassingScore: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), attempt.ID)
		assert.Equal(t, int64(70), attempt.Score)
		assert.True(t, attempt.Passed)
	})

	t.Run("非法记录_拒绝提交", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAttemptRepository()
		svc := NewService(repo)

		_, err := svc.Submit(context.Background(), domain.Attempt{
			UID:          1234,
			QuizID:       1,
			PointsEarned: 7,
			TotalPoints:  0,
			PassingScore: 60,
		})
		assert.ErrorIs(t, err, ErrInvalidAttempt)
		assert.Empty(t, repo.attempts)
	})
}

func TestService_ListAttempts(t *testing.T) {
	t.Parallel()
	svc := NewService(newFakeAttemptRepository())

	for _, earned := range []int64{3, 6, 9} {
		_, err := svc.Submit(context.Background(), domain.Attempt{
			UID:          1234,
			QuizID:       1,
			PointsEarned: earned,
			TotalPoints:  10,
			PassingScore: 60,
		})
		require.NoError(t, err)
	}

	attempts, total, err := svc.ListAttempts(context.Background(), 1234, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, attempts, 2)

	attempts, total, err = svc.ListAttempts(context.Background(), 5678, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, attempts)
}

func TestService_FindBestAttempt(t *testing.T) {
	t.Parallel()
	svc := NewService(newFakeAttemptRepository())

	for _, earned := range []int64{3, 9, 6} {
		_, err := svc.Submit(context.Background(), domain.Attempt{
			UID:          1234,
			QuizID:       1,
			PointsEarned: earned,
			TotalPoints:  10,
			PassingScore: 60,
		})
		require.NoError(t, err)
	}

	best, err := svc.FindBestAttempt(context.Background(), 1234, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(90), best.Score)
	assert.True(t, best.Passed)

	_, err = svc.FindBestAttempt(context.Background(), 1234, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
