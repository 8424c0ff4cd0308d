package api

import (
	"github.com/gin-gonic/gin"
)

type signInRequest struct {
	IDToken string `json:"idToken"`
}

type principalResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoUrl"`
}

type signInResponse struct {
	SignedIn  bool               `json:"signedIn"`
	Principal *principalResponse `json:"principal,omitempty"`
	LoadError *string            `json:"loadError,omitempty"`
}

func (m ApiHandler) signIn(c *gin.Context) {
	var requestBody signInRequest
	if err := c.BindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	principal, err := m.IdentityRepository.SignIn(c.Request.Context(), requestBody.IDToken)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}
	if principal == nil {
		// Cancelled sign-in; stay signed out.
		c.JSON(200, signInResponse{SignedIn: false})
		return
	}

	out := signInResponse{
		SignedIn: true,
		Principal: &principalResponse{
			ID:          principal.ID,
			DisplayName: principal.DisplayName,
			Email:       principal.Email,
			PhotoURL:    principal.PhotoURL,
		},
	}
	// The session tracker already ran its one-shot document load during
	// SignIn's synchronous notification; surface its outcome here.
	if loadErr := m.SessionService.LoadError(); loadErr != nil {
		message := loadErr.Error()
		out.LoadError = &message
	}

	c.JSON(200, out)
}

func (m ApiHandler) signOut(c *gin.Context) {
	if err := m.IdentityRepository.SignOut(c.Request.Context()); err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, gin.H{"signedIn": false})
}
