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

package domain

import "errors"

var ErrInvalidRating = errors.New("评分必须在1到5之间")

type ReviewStatus uint8

func (s ReviewStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// PendingStatus 待审核, 创建后的初始状态
	PendingStatus ReviewStatus = iota + 1
	// ApprovedStatus 审核通过, 商品页可见
	ApprovedStatus
	// RejectedStatus 审核不通过
	RejectedStatus
)

type Review struct {
	ID    int64
	UID   int64
	SKUSN string
	// OrderSN 评价来源订单, 仅购买过的买家可以评价
	OrderSN string
	// Rating 1到5星
	Rating  int32
	Title   string
	Content string
	Status  ReviewStatus
	// HelpfulVotes 有用投票数, 只增不减
	HelpfulVotes int64
	Ctime        int64
	Utime        int64
}

func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
