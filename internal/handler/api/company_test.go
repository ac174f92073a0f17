//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"hummane-api/internal/domain/company"
	"hummane-api/internal/handler/api"
	reqdto "hummane-api/internal/handler/dto/request"
	resdto "hummane-api/internal/handler/dto/response"
	"hummane-api/internal/usecase"
	"hummane-api/tests/common/builder"
	"hummane-api/tests/common/httptest"
	"hummane-api/tests/common/testutil"
	usecasemock "hummane-api/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CompanyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockUseCase *usecasemock.MockCompanyUseCase
	handler     *api.CompanyHandler
}

func (s *CompanyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUseCase = usecasemock.NewMockCompanyUseCase(s.mockCtrl)
	s.handler = api.NewCompanyHandler(s.mockUseCase)

	s.router.POST("/companies", s.handler.Create)
	s.router.GET("/companies", s.handler.List)
	s.router.GET("/companies/:id", s.handler.Get)
	s.router.PATCH("/companies/:id", s.handler.Update)
	s.router.DELETE("/companies/:id", s.handler.Delete)
}

func (s *CompanyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCompanyHandlerSuite(t *testing.T) {
	suite.Run(t, new(CompanyHandlerTestSuite))
}

func (s *CompanyHandlerTestSuite) TestCreate() {
	url := "/companies"
	ownerID := uuid.New()
	reqBody := reqdto.CreateCompanyRequest{Name: "Acme Corp", OwnerID: ownerID}

	s.Run("success: returns 201 with the created company", func() {
		returnCompany := builder.NewCompanyBuilder().WithOwnerID(ownerID).BuildDomain()
		s.mockUseCase.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(returnCompany, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CompanyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnCompany.Name, response.Name)
		s.Equal(ownerID, response.OwnerID)
	})

	s.Run("error: 400 on binding failures", func() {
		for _, tc := range []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "missing owner", mutate: testutil.Field("ownerId", nil)},
		} {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 with field issues when the owner does not exist", func() {
		s.mockUseCase.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, &usecase.ValidationError{Issues: []usecase.FieldIssue{
				{Field: "ownerId", Message: "must reference an existing user"},
			}}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		s.Contains(rec.Body.String(), "must reference an existing user")
	})
}

func (s *CompanyHandlerTestSuite) TestGet() {
	companyID := uuid.New()

	s.Run("success: returns the company", func() {
		returnCompany := builder.NewCompanyBuilder().BuildDomain()
		returnCompany.ID = companyID
		s.mockUseCase.EXPECT().Get(gomock.Any(), companyID).
			Return(returnCompany, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/companies/"+companyID.String(), nil, "")

		var response resdto.CompanyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(companyID, response.ID)
	})

	s.Run("error: 404 on unknown company", func() {
		s.mockUseCase.EXPECT().Get(gomock.Any(), companyID).
			Return(nil, usecase.ErrCompanyNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/companies/"+companyID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Company not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/companies/oops", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid company ID format")
	})
}

func (s *CompanyHandlerTestSuite) TestList() {
	s.Run("success: lists companies", func() {
		returnCompanies := []*company.Company{
			builder.NewCompanyBuilder().WithName("A Corp").BuildDomain(),
			builder.NewCompanyBuilder().WithName("B Corp").BuildDomain(),
		}
		s.mockUseCase.EXPECT().List(gomock.Any()).
			Return(returnCompanies, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/companies", nil, "")

		var response []resdto.CompanyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})
}

func (s *CompanyHandlerTestSuite) TestUpdateAndDelete() {
	companyID := uuid.New()

	s.Run("success: update returns the patched company", func() {
		returnCompany := builder.NewCompanyBuilder().WithName("After Corp").BuildDomain()
		returnCompany.ID = companyID
		s.mockUseCase.EXPECT().Update(gomock.Any(), companyID, map[string]any{"name": "After Corp"}).
			Return(returnCompany, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/companies/"+companyID.String(), map[string]any{"name": "After Corp"}, "")

		var response resdto.CompanyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("After Corp", response.Name)
	})

	s.Run("error: update yields 404 on unknown company", func() {
		s.mockUseCase.EXPECT().Update(gomock.Any(), companyID, gomock.Any()).
			Return(nil, usecase.ErrCompanyNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/companies/"+companyID.String(), map[string]any{"name": "X"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Company not found")
	})

	s.Run("success: delete returns 204", func() {
		s.mockUseCase.EXPECT().Delete(gomock.Any(), companyID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/companies/"+companyID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})
}
