package api

import (
	"errors"
	"net/http"

	reqdto "hummane-api/internal/handler/dto/request"
	resdto "hummane-api/internal/handler/dto/response"
	"hummane-api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	companyUseCase usecase.CompanyUseCase
}

func NewCompanyHandler(companyUseCase usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{
		companyUseCase: companyUseCase,
	}
}

// @Summary Create company
// @Description Create a new company owned by an existing user
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCompanyRequest true "Company request"
// @Success 201 {object} resdto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req reqdto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	comp, err := h.companyUseCase.Create(c.Request.Context(), usecase.CreateCompanyInput{
		Name:     req.Name,
		Industry: req.Industry,
		Size:     req.Size,
		Currency: req.Currency,
		Timezone: req.Timezone,
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		var validationErr *usecase.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"detail": validationErr.Issues,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCompany(comp))
}

// @Summary List companies
// @Description List all companies
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CompanyResponse
// @Failure 401 {object} map[string]string
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUseCase.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCompanies(companies))
}

// @Summary Get company
// @Description Get company by ID
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} resdto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid company ID format",
		})
		return
	}

	comp, err := h.companyUseCase.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Company not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCompany(comp))
}

// @Summary Update company
// @Description Apply a partial update to a company record
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param request body map[string]any true "Fields to update"
// @Success 200 {object} resdto.CompanyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /companies/{id} [patch]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid company ID format",
		})
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	comp, err := h.companyUseCase.Update(c.Request.Context(), id, updates)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Company not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCompany(comp))
}

// @Summary Delete company
// @Description Delete company by ID
// @Tags companies
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid company ID format",
		})
		return
	}

	if err := h.companyUseCase.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
