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

package web

type CreateReviewReq struct {
	SKUSN   string `json:"skuSn"`
	OrderSN string `json:"orderSn"`
	Rating  int32  `json:"rating"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateReviewResp struct {
	RID int64 `json:"rid"`
}

type ListReviewsReq struct {
	SKUSN  string `json:"skuSn"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListReviewsResp struct {
	Total   int64    `json:"total,omitempty"`
	Reviews []Review `json:"reviews,omitempty"`
}

type VoteHelpfulReq struct {
	RID int64 `json:"rid"`
}

type Page struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ModerateReviewReq struct {
	RID int64 `json:"rid"`
}

type Review struct {
	ID           int64  `json:"id"`
	SKUSN        string `json:"skuSn"`
	OrderSN      string `json:"orderSn,omitempty"`
	Rating       int32  `json:"rating"`
	Title        string `json:"title,omitempty"`
	Content      string `json:"content,omitempty"`
	Status       uint8  `json:"status,omitempty"`
	HelpfulVotes int64  `json:"helpfulVotes"`
	Ctime        int64  `json:"ctime"`
}
