package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	rankdomain "github.com/smallbiznis/rankinvoice/internal/rank/domain"
)

type valueRequest struct {
	Value string `json:"value"`
}

type rankRequest struct {
	Rank rankdomain.Rank `json:"rank"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type dateRequest struct {
	Date string `json:"date"`
}

type updateItemRequest struct {
	Field invoicedomain.ItemField `json:"field"`
	Value string                  `json:"value"`
}

func (s *Server) ListRanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": rankdomain.Ranks()})
}

func (s *Server) GetForm(c *gin.Context) {
	view, err := s.invoiceSvc.Snapshot(c.Request.Context())
	respondForm(c, view, err)
}

func (s *Server) SetIdentity(c *gin.Context) {
	var req invoicedomain.IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetIdentity(c.Request.Context(), req)
	respondForm(c, view, err)
}

func (s *Server) SetRank(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetRank(c.Request.Context(), req.Value)
	respondForm(c, view, err)
}

func (s *Server) SetUpgradeFrom(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetUpgradeFrom(c.Request.Context(), req.Rank)
	respondForm(c, view, err)
}

func (s *Server) SetUpgradeTo(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetUpgradeTo(c.Request.Context(), req.Rank)
	respondForm(c, view, err)
}

func (s *Server) SetDiscount(c *gin.Context) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetDiscount(c.Request.Context(), req.Value)
	respondForm(c, view, err)
}

func (s *Server) BackspaceDiscount(c *gin.Context) {
	view, err := s.invoiceSvc.BackspaceDiscount(c.Request.Context())
	respondForm(c, view, err)
}

func (s *Server) SetNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetNotes(c.Request.Context(), req.Notes)
	respondForm(c, view, err)
}

func (s *Server) SetDate(c *gin.Context) {
	var req dateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.SetDate(c.Request.Context(), req.Date)
	respondForm(c, view, err)
}

func (s *Server) ResetForm(c *gin.Context) {
	view, err := s.invoiceSvc.Reset(c.Request.Context())
	respondForm(c, view, err)
}

func (s *Server) AddItem(c *gin.Context) {
	var req invoicedomain.AddItemRequest
	// an empty body adds a blank row
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	view, err := s.invoiceSvc.AddItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

func (s *Server) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.invoiceSvc.UpdateItem(c.Request.Context(), invoicedomain.UpdateItemRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Field: req.Field,
		Value: req.Value,
	})
	respondForm(c, view, err)
}

func (s *Server) RemoveItem(c *gin.Context) {
	view, err := s.invoiceSvc.RemoveItem(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	respondForm(c, view, err)
}

func (s *Server) ClearItems(c *gin.Context) {
	view, err := s.invoiceSvc.ClearItems(c.Request.Context())
	respondForm(c, view, err)
}

func (s *Server) PreviewPage(c *gin.Context) {
	page, err := s.invoiceSvc.PreviewHTML(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func respondForm(c *gin.Context, view invoicedomain.FormView, err error) {
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}
