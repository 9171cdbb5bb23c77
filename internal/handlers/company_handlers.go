package handlers

import (
	"net/http"

	"pos_backend/internal/services"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CompanyHandler holds the company service.
type CompanyHandler struct {
	companyService services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(cs services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: cs}
}

// GetCompanies handles listing companies, optionally filtered by a search
// term matched against name, email and address.
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	companies, err := h.companyService.GetCompanies(c.Query("search"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// SearchCompanies handles the path-parameter search route kept for frontend
// compatibility; it is the same listing as GET /companies?search=.
func (h *CompanyHandler) SearchCompanies(c *gin.Context) {
	companies, err := h.companyService.GetCompanies(c.Param("query"))
	if err != nil {
		respondServiceError(c, err, "Failed to search companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetCompany handles fetching a company with its items.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.companyService.GetCompanyDetail(companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch company")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateCompany handles registering a new company.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req services.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	company, err := h.companyService.CreateCompany(req)
	if err != nil {
		respondServiceError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany handles rewriting a company's fields.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, "Invalid request payload", err.Error()))
		return
	}
	company, err := h.companyService.UpdateCompany(companyID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles deleting a company that owns no items.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.companyService.DeleteCompany(companyID); err != nil {
		respondServiceError(c, err, "Failed to delete company")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}

// GetCompanyStats handles the per-company inventory summary.
func (h *CompanyHandler) GetCompanyStats(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stats, err := h.companyService.GetCompanyStats(companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch company stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportCompany handles the JSON export download of a company's inventory.
func (h *CompanyHandler) ExportCompany(c *gin.Context) {
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	export, err := h.companyService.ExportCompany(companyID)
	if err != nil {
		respondServiceError(c, err, "Failed to export company")
		return
	}
	filename := "company_" + utils.Int64ToStr(companyID) + "_export_" + export.ExportDate.Format("2006-01-02") + ".json"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, export)
}
