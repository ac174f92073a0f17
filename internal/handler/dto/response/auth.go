package response

import (
	"hummane-api/internal/usecase"
)

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	User        *UserResponse    `json:"user"`
	Company     *CompanyResponse `json:"company,omitempty"`
}

func FromLoginResult(result *usecase.LoginResult) *LoginResponse {
	resp := &LoginResponse{
		AccessToken: result.Token,
		User:        FromUser(result.User),
	}
	if result.Company != nil {
		resp.Company = FromCompany(result.Company)
	}
	return resp
}
