package viewmodel

import "campus-portal/internal/model"

// NavItem 侧边栏导航项
type NavItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type navEntry struct {
	item  NavItem
	roles []model.Role
}

var (
	allRoles   = []model.Role{model.RoleAdmin, model.RoleTeacher, model.RoleStudent}
	staffRoles = []model.Role{model.RoleAdmin, model.RoleTeacher}
	adminOnly  = []model.Role{model.RoleAdmin}
)

var navigation = []navEntry{
	{NavItem{"dashboard", "仪表盘", "/"}, allRoles},
	{NavItem{"users", "用户", "/users"}, adminOnly},
	{NavItem{"students", "学生", "/students"}, staffRoles},
	{NavItem{"teachers", "教师", "/teachers"}, adminOnly},
	{NavItem{"courses", "课程", "/courses"}, allRoles},
	{NavItem{"exams", "考试", "/exams"}, allRoles},
	{NavItem{"grades", "成绩", "/grades"}, allRoles},
	{NavItem{"attendance", "考勤", "/attendance"}, allRoles},
	{NavItem{"schedules", "课表", "/schedules"}, allRoles},
	{NavItem{"departments", "院系", "/departments"}, adminOnly},
}

// BuildNavigation 返回角色可见的导航项，顺序固定
func BuildNavigation(role model.Role) ([]NavItem, error) {
	if !role.Valid() {
		return nil, model.ErrUnknownRole
	}
	items := make([]NavItem, 0, len(navigation))
	for _, e := range navigation {
		for _, r := range e.roles {
			if r == role {
				items = append(items, e.item)
				break
			}
		}
	}
	return items, nil
}
