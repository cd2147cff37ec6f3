package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtrack/internal/address"
	"medtrack/internal/domain"
	"medtrack/internal/service"
)

type signInReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Sign in (mocked, password is not verified)
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signInReq true "Credentials"
// @Success 200 {object} service.Session
// @Failure 400 {object} map[string]string
// @Router /auth/sign-in [post]
func (s *Server) signIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.Users.SignIn(c, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type signUpReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signUpReq true "Account"
// @Success 201 {object} service.Session
// @Failure 400 {object} map[string]string
// @Router /auth/sign-up [post]
func (s *Server) signUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess, err := s.Users.SignUp(c, req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /auth/sign-out [post]
func (s *Server) signOut(c *gin.Context) {
	if err := s.Users.SignOut(c); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current user
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /me [get]
func (s *Server) getMe(c *gin.Context) {
	u, _ := c.Get(userKey)
	c.JSON(http.StatusOK, u.(*domain.User))
}

// @Summary Update profile
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body service.UserPatch true "Fields to change"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /me [put]
func (s *Server) updateMe(c *gin.Context) {
	var req service.UserPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.Users.Update(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type addressReq struct {
	Address string         `json:"address"`
	Parts   *address.Parts `json:"parts"`
}

// resolve строка адреса либо собранная из частей формы
func (r addressReq) resolve() (string, error) {
	if r.Parts != nil {
		return address.FormatAddress(*r.Parts)
	}
	return r.Address, nil
}

// @Summary Set main shipping address
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addressReq true "Address"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /me/address [put]
func (s *Server) updateAddress(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	addr, err := req.resolve()
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := s.Users.UpdateAddress(c, addr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Saved addresses
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /me/addresses [get]
func (s *Server) listAddresses(c *gin.Context) {
	list, err := s.Users.SavedAddresses(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Save an address
// @Tags me
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body addressReq true "Address"
// @Success 201 {array} string
// @Failure 400 {object} map[string]string
// @Router /me/addresses [post]
func (s *Server) addAddress(c *gin.Context) {
	var req addressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	addr, err := req.resolve()
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := s.Users.AddSavedAddress(c, addr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.SavedAddresses)
}

// @Summary Look up address by CEP
// @Tags address
// @Produce json
// @Param cep path string true "CEP, 8 digits"
// @Success 200 {object} address.Result
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cep/{cep} [get]
func (s *Server) lookupCEP(c *gin.Context) {
	if s.CEP == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cep lookup disabled"})
		return
	}
	res, err := s.CEP.Lookup(c, c.Param("cep"))
	if err != nil {
		writeError(c, err)
		return
	}
	if res == nil {
		notFound(c, "cep")
		return
	}
	c.JSON(http.StatusOK, res)
}
