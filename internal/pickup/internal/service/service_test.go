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
	"testing"

	"github.com/ecodeclub/estore/internal/pickup/internal/domain"
	"github.com/ecodeclub/estore/internal/pickup/internal/repository/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo 以 dao 相同的语义在内存中维护活跃码与核销记录
type fakeRepo struct {
	nextID   int64
	active   map[string]domain.Code
	byOrder  map[int64]string
	redeemed map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		active:   make(map[string]domain.Code),
		byOrder:  make(map[int64]string),
		redeemed: make(map[string]bool),
	}
}

func (f *fakeRepo) Create(_ context.Context, c domain.Code) (domain.Code, error) {
	if _, ok := f.byOrder[c.OrderID]; ok {
		return domain.Code{}, dao.ErrOrderCodeExists
	}
	if _, ok := f.active[c.Code]; ok {
		return domain.Code{}, dao.ErrCodeCollision
	}
	f.nextID++
	c.ID = f.nextID
	f.active[c.Code] = c
	f.byOrder[c.OrderID] = c.Code
	return c, nil
}

func (f *fakeRepo) FindByCode(_ context.Context, code string) (domain.Code, error) {
	c, ok := f.active[code]
	if !ok {
		return domain.Code{}, dao.ErrCodeNotFound
	}
	return c, nil
}

func (f *fakeRepo) FindByOrderID(_ context.Context, orderID int64) (domain.Code, error) {
	code, ok := f.byOrder[orderID]
	if !ok {
		return domain.Code{}, dao.ErrCodeNotFound
	}
	return f.active[code], nil
}

func (f *fakeRepo) Redeem(_ context.Context, code string, _ int64) (domain.Code, error) {
	c, ok := f.active[code]
	if !ok {
		if f.redeemed[code] {
			return domain.Code{}, dao.ErrCodeRedeemed
		}
		return domain.Code{}, dao.ErrCodeNotFound
	}
	delete(f.active, code)
	delete(f.byOrder, c.OrderID)
	f.redeemed[code] = true
	return c, nil
}

func (f *fakeRepo) DeleteByOrderID(_ context.Context, orderID int64) error {
	code, ok := f.byOrder[orderID]
	if ok {
		delete(f.active, code)
		delete(f.byOrder, orderID)
	}
	return nil
}

func (f *fakeRepo) HasRedeemLog(_ context.Context, code string) (bool, error) {
	return f.redeemed[code], nil
}

func TestService_Mint(t *testing.T) {
	t.Parallel()

	t.Run("生成4位数字码", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		c, err := svc.Mint(context.Background(), 1, "OrderSN-1")
		require.NoError(t, err)
		assert.Len(t, c.Code, domain.CodeLength)
		for _, r := range c.Code {
			assert.True(t, r >= '0' && r <= '9')
		}
	})

	t.Run("冲突时重新生成", func(t *testing.T) {
		repo := newFakeRepo()
		codes := []string{"1234", "1234", "5678"}
		idx := 0
		svc := NewServiceWith(repo, func() (string, error) {
			code := codes[idx]
			idx++
			return code, nil
		})

		first, err := svc.Mint(context.Background(), 1, "OrderSN-1")
		require.NoError(t, err)
		assert.Equal(t, "1234", first.Code)

		second, err := svc.Mint(context.Background(), 2, "OrderSN-2")
		require.NoError(t, err)
		assert.Equal(t, "5678", second.Code)
	})

	t.Run("同一订单重复生成返回已有码", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		first, err := svc.Mint(context.Background(), 1, "OrderSN-1")
		require.NoError(t, err)
		second, err := svc.Mint(context.Background(), 1, "OrderSN-1")
		require.NoError(t, err)
		assert.Equal(t, first.Code, second.Code)
		assert.Len(t, repo.active, 1)
	})

	t.Run("命名空间耗尽", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewServiceWith(repo, func() (string, error) { return "0000", nil })
		_, err := svc.Mint(context.Background(), 1, "OrderSN-1")
		require.NoError(t, err)
		_, err = svc.Mint(context.Background(), 2, "OrderSN-2")
		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})
}

func TestService_FindActiveByCode(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := NewService(repo)

	minted, err := svc.Mint(context.Background(), 1, "OrderSN-1")
	require.NoError(t, err)

	t.Run("找到活跃订单", func(t *testing.T) {
		c, err := svc.FindActiveByCode(context.Background(), minted.Code)
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.OrderID)
		assert.Equal(t, "OrderSN-1", c.OrderSN)
	})

	t.Run("从未存在", func(t *testing.T) {
		_, err := svc.FindActiveByCode(context.Background(), "none")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("已核销", func(t *testing.T) {
		_, err := svc.Redeem(context.Background(), 99, minted.Code)
		require.NoError(t, err)
		_, err = svc.FindActiveByCode(context.Background(), minted.Code)
		assert.ErrorIs(t, err, ErrCodeRedeemed)
	})
}

func TestService_Redeem(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := NewService(repo)

	minted, err := svc.Mint(context.Background(), 1, "OrderSN-1")
	require.NoError(t, err)

	c, err := svc.Redeem(context.Background(), 99, minted.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.OrderID)

	// 幂等保护: 重复核销报错而不是静默成功
	_, err = svc.Redeem(context.Background(), 99, minted.Code)
	assert.ErrorIs(t, err, ErrCodeRedeemed)
}

func TestService_InvalidateByOrderID(t *testing.T) {
	t.Parallel()
	repo := newFakeRepo()
	svc := NewService(repo)

	minted, err := svc.Mint(context.Background(), 1, "OrderSN-1")
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateByOrderID(context.Background(), 1))

	// 作废不是核销, 之后按"从未存在"处理
	_, err = svc.FindActiveByCode(context.Background(), minted.Code)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	// 作废后码可复用
	c, err := svc.Mint(context.Background(), 2, "OrderSN-2")
	require.NoError(t, err)
	assert.Len(t, c.Code, domain.CodeLength)
}
