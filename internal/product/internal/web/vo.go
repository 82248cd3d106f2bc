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

type SPUSNReq struct {
	SN string `json:"sn"`
}

type ListProductsReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListProductsResp struct {
	Total int64 `json:"total,omitempty"`
	SPUs  []SPU `json:"spus,omitempty"`
}

type SaveProductReq struct {
	SPU SPU `json:"spu"`
}

type UpdateProductStatusReq struct {
	ID int64 `json:"id"`
}

type SPU struct {
	SN   string `json:"sn"`
	Name string `json:"name"`
	Desc string `json:"desc"`
	SKUs []SKU  `json:"skus"`
}

type SKU struct {
	SN    string `json:"sn"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
	Image string `json:"image"`
}
