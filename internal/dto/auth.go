package dto

import "campus-portal/internal/model"

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求，透传至上游
type RegisterRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=6,max=64"`
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name"  binding:"required,max=50"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
	Role      string `json:"role"       binding:"required,oneof=admin teacher student"`
}

// ── 认证模块响应 ──

// TokenResponse 网关访问令牌
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"` // 秒
	User        model.User `json:"user"`
}
