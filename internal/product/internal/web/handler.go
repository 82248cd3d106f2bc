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

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/estore/internal/product/internal/domain"
	"github.com/ecodeclub/estore/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/detail", ginx.BS[SPUSNReq](h.RetrieveProductDetail))
	g.POST("/list", ginx.BS[ListProductsReq](h.ListProducts))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) RetrieveProductDetail(ctx *ginx.Context, req SPUSNReq, _ session.Session) (ginx.Result, error) {
	p, err := h.svc.FindSPUBySN(ctx.Request.Context(), req.SN)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: toSPUVO(p),
	}, nil
}

func (h *Handler) ListProducts(ctx *ginx.Context, req ListProductsReq, _ session.Session) (ginx.Result, error) {
	count, err := h.svc.CountSPUs(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	spus, err := h.svc.ListSPUs(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListProductsResp{
			Total: count,
			SPUs: slice.Map(spus, func(idx int, src domain.SPU) SPU {
				return toSPUVO(src)
			}),
		},
	}, nil
}

func toSPUVO(p domain.SPU) SPU {
	return SPU{
		SN:   p.SN,
		Name: p.Name,
		Desc: p.Desc,
		SKUs: slice.Map(p.SKUs, func(idx int, src domain.SKU) SKU {
			return SKU{
				SN:    src.SN,
				Name:  src.Name,
				Desc:  src.Desc,
				Price: src.Price,
				Stock: src.Stock,
				Image: src.Image,
			}
		}),
	}
}
