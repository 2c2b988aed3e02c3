package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/mail"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-portal/internal/dto"
	"campus-portal/internal/model"
	"campus-portal/internal/session"
	pkgerrors "campus-portal/pkg/errors"
)

const (
	maxImportRows      = 1000
	tempPasswordLength = 10
)

var (
	ErrImportNoData      = errors.New("Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("Excel表头缺少必要列（邮箱/名/姓/角色）")
)

// ImportUserRow Excel 导入解析后的单行数据
type ImportUserRow struct {
	Row       int
	Email     string
	FirstName string
	LastName  string
	Role      string
	Phone     string
}

// ImportService 管理员通过 Excel 批量注册用户
type ImportService interface {
	ParseImportFile(reader io.Reader) ([]ImportUserRow, error)
	ImportUsers(ctx context.Context, sess *session.Session, rows []ImportUserRow) (*dto.ImportUserResponse, error)
}

type importService struct {
	repos  RepoFactory
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(repos RepoFactory, logger *zap.Logger) ImportService {
	return &importService{repos: repos, logger: logger}
}

// ────────────────────── ParseImportFile ──────────────────────

// ParseImportFile 解析导入 Excel 文件，表头支持中英文且列序不限
func (s *importService) ParseImportFile(reader io.Reader) ([]ImportUserRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	col := parseHeaderIndex(excelRows[0])
	if col["email"] < 0 || col["first_name"] < 0 || col["last_name"] < 0 || col["role"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportUserRow
	for i := 1; i < len(excelRows); i++ {
		r := excelRows[i]
		at := func(key string) string {
			if idx := col[key]; idx >= 0 && idx < len(r) {
				return strings.TrimSpace(r[idx])
			}
			return ""
		}
		item := ImportUserRow{
			Row:       i + 1,
			Email:     at("email"),
			FirstName: at("first_name"),
			LastName:  at("last_name"),
			Role:      strings.ToLower(at("role")),
			Phone:     at("phone"),
		}
		// 跳过全空行
		if item.Email == "" && item.FirstName == "" && item.LastName == "" && item.Role == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseHeaderIndex 解析表头，返回列名 -> 列索引映射
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"email":      -1,
		"first_name": -1,
		"last_name":  -1,
		"role":       -1,
		"phone":      -1,
	}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "邮箱", "email":
			idx["email"] = i
		case "名", "first_name":
			idx["first_name"] = i
		case "姓", "last_name":
			idx["last_name"] = i
		case "角色", "role":
			idx["role"] = i
		case "电话", "phone":
			idx["phone"] = i
		}
	}
	return idx
}

// ────────────────────── ImportUsers ──────────────────────

// ImportUsers 先整体校验，再逐行调用上游注册
// 上游无批量事务，已注册成功的行不会回滚，失败行附带上游原因
func (s *importService) ImportUsers(ctx context.Context, sess *session.Session, rows []ImportUserRow) (*dto.ImportUserResponse, error) {
	if _, err := require(sess, model.RoleAdmin); err != nil {
		return nil, err
	}
	resp := &dto.ImportUserResponse{Total: len(rows)}
	fail := func(row int, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportUserError{Row: row, Reason: reason})
	}

	// 第一阶段：本地校验
	type validatedRow struct {
		row  ImportUserRow
		role model.Role
	}
	var valid []validatedRow
	seen := make(map[string]int)
	for _, row := range rows {
		if row.Email == "" || row.FirstName == "" || row.LastName == "" || row.Role == "" {
			fail(row.Row, "必填字段为空")
			continue
		}
		// 仅接受裸地址，不含显示名与尖括号
		if addr, err := mail.ParseAddress(row.Email); err != nil || addr.Address != row.Email {
			fail(row.Row, fmt.Sprintf("邮箱格式错误: %s", row.Email))
			continue
		}
		role, err := model.ParseRole(row.Role)
		if err != nil {
			fail(row.Row, fmt.Sprintf("未知角色: %s", row.Role))
			continue
		}
		key := strings.ToLower(row.Email)
		if first, dup := seen[key]; dup {
			fail(row.Row, fmt.Sprintf("邮箱与第 %d 行重复", first))
			continue
		}
		seen[key] = row.Row
		valid = append(valid, validatedRow{row: row, role: role})
	}

	// 第二阶段：逐行注册
	repo := s.repos(sess)
	for _, vr := range valid {
		pwd, err := generateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, err
		}
		u, err := repo.Auth.Register(ctx, &model.RegisterInput{
			Email:     vr.row.Email,
			Password:  pwd,
			FirstName: vr.row.FirstName,
			LastName:  vr.row.LastName,
			Phone:     vr.row.Phone,
			Role:      vr.role,
		})
		if err != nil {
			if v, ok := pkgerrors.IsValidation(err); ok {
				fail(vr.row.Row, v.Detail)
				continue
			}
			// 上游不可用时中止，避免逐行重复失败
			s.logger.Error("导入用户注册失败", zap.Int("row", vr.row.Row), zap.Error(err))
			return nil, fmt.Errorf("第 %d 行注册失败，已中止导入: %w", vr.row.Row, err)
		}
		resp.Success++
		resp.Created = append(resp.Created, dto.ImportedUser{
			Row:          vr.row.Row,
			ID:           u.ID,
			Email:        u.Email,
			TempPassword: pwd,
		})
	}
	return resp, nil
}

// generateTempPassword 生成指定长度的临时密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}
	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	result := make([]byte, length)
	var err error
	if result[0], err = pick(letters); err != nil {
		return "", err
	}
	if result[1], err = pick(digits); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if result[i], err = pick(all); err != nil {
			return "", err
		}
	}

	// Fisher-Yates 洗牌
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}
	return string(result), nil
}
