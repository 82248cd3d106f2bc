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

package job

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/order/internal/domain"
	"github.com/ecodeclub/estore/internal/order/internal/service"
	"github.com/gotomicro/ego/task/ecron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expiredOrdersService 只实现任务用到的三个方法, 其余方法走内嵌接口
type expiredOrdersService struct {
	service.Service
	expired  []domain.Order
	canceled []int64
}

func (s *expiredOrdersService) TotalExpiredOrders(_ context.Context, _ int64) (int64, error) {
	return int64(len(s.expired)), nil
}

func (s *expiredOrdersService) ListExpiredOrders(_ context.Context, offset, limit int, _ int64) ([]domain.Order, error) {
	if offset >= len(s.expired) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.expired) {
		end = len(s.expired)
	}
	return s.expired[offset:end], nil
}

func (s *expiredOrdersService) CancelExpiredOrders(_ context.Context, ids []int64) error {
	s.canceled = append(s.canceled, ids...)
	s.expired = slice.FilterDelete(s.expired, func(idx int, src domain.Order) bool {
		return slice.Contains(ids, src.ID)
	})
	return nil
}

func TestCloseExpiredOrdersJob_Run(t *testing.T) {
	t.Parallel()

	svc := &expiredOrdersService{
		expired: []domain.Order{
			{ID: 1, SN: "OrderSN-1", Status: domain.OrderStatusPendingPayment},
			{ID: 2, SN: "OrderSN-2", Status: domain.OrderStatusPendingPayment},
			{ID: 3, SN: "OrderSN-3", Status: domain.OrderStatusPendingPayment},
			{ID: 4, SN: "OrderSN-4", Status: domain.OrderStatusPendingPayment},
			{ID: 5, SN: "OrderSN-5", Status: domain.OrderStatusPendingPayment},
		},
	}
	// 通过接口触发, 同时验证定时任务契约
	var job ecron.NamedJob = NewCloseExpiredOrdersJob(svc, 2, 30, 10*time.Second)

	assert.Equal(t, "CloseExpiredOrdersJob", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, svc.canceled)
	assert.Empty(t, svc.expired)
}

func TestCloseExpiredOrdersJob_Run_NoExpiredOrders(t *testing.T) {
	t.Parallel()

	svc := &expiredOrdersService{}
	job := NewCloseExpiredOrdersJob(svc, 10, 30, 10*time.Second)

	require.NoError(t, job.Run(context.Background()))
	assert.Empty(t, svc.canceled)
}
