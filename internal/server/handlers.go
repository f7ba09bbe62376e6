package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/transform"
)

// CalculateRequest is the body of POST /v1/calculate
type CalculateRequest struct {
	Regime  string                `json:"regime" binding:"required"`
	Profile domain.UserTaxProfile `json:"profile"`
}

// CompareRequest is the body of POST /v1/compare
type CompareRequest struct {
	Profile domain.UserTaxProfile `json:"profile"`
}

// WhatIfRequest is the body of POST /v1/whatif. Transforms use the
// "name:key=value,..." syntax; templates are applied after them.
type WhatIfRequest struct {
	Profile    domain.UserTaxProfile `json:"profile"`
	Transforms []string              `json:"transforms"`
	Templates  []string              `json:"templates"`
}

// WhatIfResponse compares a profile before and after the changes
type WhatIfResponse struct {
	Changes []string               `json:"changes"`
	Before  *compare.ComparisonSet `json:"before"`
	After   *compare.ComparisonSet `json:"after"`
}

// BreakEvenRequest is the body of POST /v1/breakeven. An empty lever searches all.
type BreakEvenRequest struct {
	Profile domain.UserTaxProfile `json:"profile"`
	Lever   string                `json:"lever"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	codeInvalidRequest = "invalid_request"
	codeUnknownRegime  = "unknown_regime"
	codeCalculation    = "calculation_failed"
	codeTransform      = "invalid_transform"
)

func (s *Server) fail(c *gin.Context, status int, code string, err error) {
	s.logger.Warn("request failed", "request_id", c.GetString(requestIDKey), "code", code, "error", err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"fiscal_year": s.config.FiscalYear.Label,
	})
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	regime, err := domain.ParseRegime(req.Regime)
	if err != nil {
		s.fail(c, http.StatusBadRequest, codeUnknownRegime, err)
		return
	}

	config.AssignIDs(&req.Profile)
	result, err := s.calc.Calculate(&req.Profile, regime)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
		return
	}

	s.metrics.CalculationsTotal.WithLabelValues(string(regime)).Inc()
	if len(result.HardBlocks) > 0 {
		s.metrics.HardBlocksTotal.Inc()
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	config.AssignIDs(&req.Profile)
	compSet, err := s.compare.Compare(c.Request.Context(), &req.Profile)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
		return
	}

	for _, regime := range domain.Regimes {
		s.metrics.CalculationsTotal.WithLabelValues(string(regime)).Inc()
	}
	s.metrics.RecommendationsTotal.WithLabelValues(string(compSet.Recommended)).Inc()
	if len(compSet.HardBlocks) > 0 {
		s.metrics.HardBlocksTotal.Inc()
	}
	c.JSON(http.StatusOK, compSet)
}

func (s *Server) handleWhatIf(c *gin.Context) {
	var req WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	transforms, err := s.transforms.ParseTransformSpecs(req.Transforms)
	if err != nil {
		s.fail(c, http.StatusBadRequest, codeTransform, err)
		return
	}
	for _, name := range req.Templates {
		tpl, ok := s.templates.Get(name)
		if !ok {
			s.fail(c, http.StatusBadRequest, codeTransform, fmt.Errorf("unknown template: %s", name))
			return
		}
		transforms = append(transforms, tpl.Transforms...)
	}

	config.AssignIDs(&req.Profile)
	modified, err := transform.ApplyTransforms(&req.Profile, transforms)
	if err != nil {
		s.fail(c, http.StatusBadRequest, codeTransform, err)
		return
	}

	before, err := s.compare.Compare(c.Request.Context(), &req.Profile)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
		return
	}
	after, err := s.compare.Compare(c.Request.Context(), modified)
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
		return
	}
	for _, regime := range domain.Regimes {
		s.metrics.CalculationsTotal.WithLabelValues(string(regime)).Add(2)
	}
	c.JSON(http.StatusOK, WhatIfResponse{Changes: transform.Describe(transforms), Before: before, After: after})
}

func (s *Server) handleBreakEven(c *gin.Context) {
	var req BreakEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	config.AssignIDs(&req.Profile)

	if req.Lever == "" {
		mr, err := s.solver.SolveAll(c.Request.Context(), &req.Profile)
		if err != nil {
			s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
			return
		}
		c.JSON(http.StatusOK, mr)
		return
	}

	if _, ok := breakeven.LookupLever(breakeven.Lever(req.Lever)); !ok {
		s.fail(c, http.StatusBadRequest, codeInvalidRequest, fmt.Errorf("unknown lever %q", req.Lever))
		return
	}
	result, err := s.solver.Solve(c.Request.Context(), breakeven.Request{Profile: &req.Profile, Lever: breakeven.Lever(req.Lever)})
	if err != nil {
		s.fail(c, http.StatusUnprocessableEntity, codeCalculation, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
