package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Larisagabriela329/goit-project-health-backend/internal/common"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := s.auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": user.Email})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	pair, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// the same answer for unknown email and wrong password
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	var req refreshRequest
	// an empty body counts as an absent token, not a malformed request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := s.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		s.internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	// an empty body counts as an absent token, not a malformed request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	pair, err := s.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		case errors.Is(err, common.ErrorSessionInvalid):
			// unknown, rotated, and malformed tokens all get the same answer
			c.JSON(http.StatusForbidden, gin.H{"message": "Token invalid or expired"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	current, err := s.profiles.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
			return
		}
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":    current.Email,
		"username": current.Username,
		"userData": gin.H{
			"dailyRate":          current.DailyRateKcal,
			"notAllowedProducts": current.NotAllowedProducts,
		},
	})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
