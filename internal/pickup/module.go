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

package pickup

import (
	"sync"

	"github.com/ecodeclub/estore/internal/pickup/internal/domain"
	"github.com/ecodeclub/estore/internal/pickup/internal/repository/dao"
	"github.com/ecodeclub/estore/internal/pickup/internal/service"
	"github.com/ego-component/egorm"
)

type Module struct {
	Svc Service
}

type Service = service.Service

type Code = domain.Code

var (
	ErrCodeNotFound       = service.ErrCodeNotFound
	ErrCodeRedeemed       = service.ErrCodeRedeemed
	ErrCodeSpaceExhausted = service.ErrCodeSpaceExhausted
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PickupCodeDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPickupCodeDAO(db)
}
