package index

// Entity 可按 ID 建索引的记录
type Entity interface {
	GetID() string
}

// Index 按 ID 查找记录；缺失时返回哨兵值
type Index[T Entity] struct {
	items   map[string]T
	unknown T
}

// Build O(n) 建立索引，ID 重复时保留最后一条
func Build[T Entity](items []T, unknown T) *Index[T] {
	m := make(map[string]T, len(items))
	for _, it := range items {
		m[it.GetID()] = it
	}
	return &Index[T]{items: m, unknown: unknown}
}

// Get 查找记录
func (ix *Index[T]) Get(id string) (T, bool) {
	if ix == nil {
		var zero T
		return zero, false
	}
	v, ok := ix.items[id]
	return v, ok
}

// Lookup 查找记录，缺失时返回哨兵值
func (ix *Index[T]) Lookup(id string) T {
	if v, ok := ix.Get(id); ok {
		return v
	}
	if ix == nil {
		var zero T
		return zero
	}
	return ix.unknown
}

// Len 索引中的记录数
func (ix *Index[T]) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.items)
}
