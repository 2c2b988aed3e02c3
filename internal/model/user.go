package model

// User 平台用户（GET /users, /auth/me）
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (u User) GetID() string { return u.ID }

// FullName 姓名拼接
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Initials 头像缩写
func (u User) Initials() string {
	var out []rune
	if r := []rune(u.FirstName); len(r) > 0 {
		out = append(out, r[0])
	}
	if r := []rune(u.LastName); len(r) > 0 {
		out = append(out, r[0])
	}
	return toUpper(string(out))
}

// RegisterInput 注册请求体（POST /auth/register）
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
}

// LoginResult 上游登录响应
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
