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
	"github.com/gin-gonic/gin"
)

// AdminHandler 运营侧的商品管理
type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/save", ginx.B[SaveProductReq](h.SaveProduct))
	g.POST("/publish", ginx.B[UpdateProductStatusReq](h.PublishProduct))
	g.POST("/shelve/off", ginx.B[UpdateProductStatusReq](h.TakeDownProduct))
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) SaveProduct(ctx *ginx.Context, req SaveProductReq) (ginx.Result, error) {
	id, err := h.svc.SaveSPU(ctx.Request.Context(), domain.SPU{
		SN:     req.SPU.SN,
		Name:   req.SPU.Name,
		Desc:   req.SPU.Desc,
		Status: domain.StatusOffShelf,
		SKUs: slice.Map(req.SPU.SKUs, func(idx int, src SKU) domain.SKU {
			return domain.SKU{
				SN:     src.SN,
				Name:   src.Name,
				Desc:   src.Desc,
				Price:  src.Price,
				Stock:  src.Stock,
				Image:  src.Image,
				Status: domain.StatusOffShelf,
			}
		}),
	})
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: id}, nil
}

func (h *AdminHandler) PublishProduct(ctx *ginx.Context, req UpdateProductStatusReq) (ginx.Result, error) {
	err := h.svc.UpdateSPUStatus(ctx.Request.Context(), req.ID, domain.StatusOnShelf)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *AdminHandler) TakeDownProduct(ctx *ginx.Context, req UpdateProductStatusReq) (ginx.Result, error) {
	err := h.svc.UpdateSPUStatus(ctx.Request.Context(), req.ID, domain.StatusOffShelf)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}
